package common

import (
	"github.com/spf13/cobra"
)

const (
	AccountFlag   = "account"
	NamespaceFlag = "namespace"
	XFlag         = "x"
	YFlag         = "y"
	COSEFlag      = "cose"
)

// RegisterCredentialFlags registers the flags that select a binding
func RegisterCredentialFlags(cmd *cobra.Command, account *string, namespaceID *uint32) {
	cmd.Flags().StringVar(
		account,
		AccountFlag,
		"",
		"the account invoking the registry",
	)

	cmd.Flags().Uint32Var(
		namespaceID,
		NamespaceFlag,
		0,
		"the namespace of the credential",
	)

	_ = cmd.MarkFlagRequired(AccountFlag)
}

// RegisterKeyFlags registers the flags that describe a passkey
func RegisterKeyFlags(cmd *cobra.Command, x, y, cose *string) {
	cmd.Flags().StringVar(
		x,
		XFlag,
		"",
		"the x coordinate of the public key",
	)

	cmd.Flags().StringVar(
		y,
		YFlag,
		"",
		"the y coordinate of the public key",
	)

	cmd.Flags().StringVar(
		cose,
		COSEFlag,
		"",
		"the hex encoded COSE_Key of the passkey, as found in a WebAuthn attestation",
	)

	cmd.MarkFlagsRequiredTogether(XFlag, YFlag)
	cmd.MarkFlagsMutuallyExclusive(XFlag, COSEFlag)
}
