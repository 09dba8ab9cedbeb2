package contracts

import "github.com/0xPolygon/edge-modules/types"

var (
	// PasskeyValidatorContract is the default address of the passkey validation module
	PasskeyValidatorContract = types.StringToAddress("0x7001")
	// AutomationContract is the default address of the recurring swap module
	AutomationContract = types.StringToAddress("0x7002")
	// EntryPointContract is the default relay of batched user operations (ERC-4337 v0.6 entry point)
	EntryPointContract = types.StringToAddress("0x5FF137D4b0FDCD49DcA30c7CF57E578a026d2789")
)
