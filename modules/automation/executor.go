package automation

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/armon/go-metrics"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/edge-modules/modules"
	"github.com/0xPolygon/edge-modules/state/runtime"
	"github.com/0xPolygon/edge-modules/state/runtime/addresslist"
	"github.com/0xPolygon/edge-modules/types"
)

const (
	ModuleName    = "AutomationExecutor"
	ModuleVersion = "1.0.0"

	// automationMetrics is a prefix used for plan scheduler metrics
	automationMetrics = "automation"

	// gas forwarded to the token and swap endpoint calls
	allowanceCallGas = uint64(100_000)
	swapCallGas      = uint64(1_000_000)
)

// ExecutorInterfaceID is the native plan scheduler capability
var ExecutorInterfaceID = modules.InterfaceIDOf(
	"createPlan(address,address,uint256,uint256)",
	"executePlan(uint256,address,bytes)",
	"cancelPlan(uint256)",
	"whitelistDex(address)",
	"unwhitelistDex(address)",
)

type planStore interface {
	ReadPlan(id uint64) (*types.Plan, bool, error)
	WritePlan(plan *types.Plan) error
	ReadPlanCounter() (uint64, error)
	WritePlanCounter(n uint64) error
}

type stateRef interface {
	SetState(addr types.Address, key, value types.Hash)
	GetStorage(addr types.Address, key types.Hash) types.Hash
}

// Store is the persistence the executor needs
type Store interface {
	planStore
	stateRef
}

// Execution describes a successful plan execution
type Execution struct {
	ID         string        `json:"id"`
	PlanID     uint64        `json:"planId"`
	Dex        types.Address `json:"dex"`
	Timestamp  uint64        `json:"timestamp"`
	Allowance  *big.Int      `json:"allowance"`
	ReturnData []byte        `json:"returnData"`
}

// Executor stores recurring swap plans and runs them through whitelisted
// swap endpoints. The current time and every external call come from the host.
type Executor struct {
	logger hclog.Logger
	addr   types.Address

	store     Store
	host      runtime.Host
	whitelist *addresslist.AddressList
	events    modules.EventSink

	// lock serializes access to the plan table, it is never held
	// across an external call
	lock sync.Mutex

	// executing is set for the whole duration of ExecutePlan
	executing atomic.Bool
}

var _ modules.Module = (*Executor)(nil)

// NewExecutor creates the automation module running at addr.
// The dex whitelist lives in the storage slots of addr.
func NewExecutor(
	logger hclog.Logger,
	addr types.Address,
	store Store,
	host runtime.Host,
	events modules.EventSink,
) *Executor {
	return &Executor{
		logger:    logger.Named("automation"),
		addr:      addr,
		store:     store,
		host:      host,
		whitelist: addresslist.NewAddressList(store, addr),
		events:    events,
	}
}

func (e *Executor) Addr() types.Address {
	return e.addr
}

func (e *Executor) Name() string {
	return ModuleName
}

func (e *Executor) Version() string {
	return ModuleVersion
}

func (e *Executor) IsModuleType(typeID *big.Int) bool {
	return modules.IsType(typeID, modules.TypeExecutor)
}

func (e *Executor) SupportsInterface(id modules.InterfaceID) bool {
	return modules.Supports(id, ExecutorInterfaceID)
}

// installed flags live in a slot keyed by the account, apart from the role slots
func installedKey(account types.Address) types.Hash {
	key := types.BytesToHash(account.Bytes())
	key[0] = 0x01

	return key
}

// OnInstall marks the module as installed for account. Plans are shared by
// every account, so the payload is ignored.
func (e *Executor) OnInstall(account types.Address, _ []byte) error {
	e.store.SetState(e.addr, installedKey(account), types.BytesToHash([]byte{1}))

	return nil
}

func (e *Executor) OnUninstall(account types.Address, _ []byte) error {
	e.store.SetState(e.addr, installedKey(account), types.ZeroHash)

	return nil
}

func (e *Executor) IsInitialized(account types.Address) bool {
	return e.store.GetStorage(e.addr, installedKey(account)) != types.ZeroHash
}

func (e *Executor) now() uint64 {
	ts := e.host.GetTxContext().Timestamp
	if ts < 0 {
		return 0
	}

	return uint64(ts)
}

// CreatePlan stores a new active plan and returns its id. Ids start at 1
// and are never reused.
func (e *Executor) CreatePlan(tokenIn, tokenOut types.Address, amount *big.Int, interval uint64) (uint64, error) {
	// the allowance call takes a uint256
	if amount == nil || amount.Sign() <= 0 || amount.BitLen() > 256 {
		return 0, ErrInvalidAmount
	}

	if interval == 0 {
		return 0, ErrInvalidInterval
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	last, err := e.store.ReadPlanCounter()
	if err != nil {
		return 0, fmt.Errorf("failed to read plan counter: %w", err)
	}

	plan := &types.Plan{
		ID:                last + 1,
		TokenIn:           tokenIn,
		TokenOut:          tokenOut,
		Amount:            new(big.Int).Set(amount),
		Interval:          interval,
		LastExecutionTime: e.now(),
		Active:            true,
	}

	// the plan goes first, a failed counter write leaves the id free for the next plan
	if err := e.store.WritePlan(plan); err != nil {
		return 0, fmt.Errorf("failed to write plan: %w", err)
	}

	if err := e.store.WritePlanCounter(plan.ID); err != nil {
		return 0, fmt.Errorf("failed to write plan counter: %w", err)
	}

	e.emitPlanCreated(plan)
	e.logger.Info("plan created", "id", plan.ID, "tokenIn", tokenIn, "tokenOut", tokenOut,
		"amount", amount, "interval", interval)
	metrics.IncrCounter([]string{automationMetrics, "plan", "created"}, 1)
	metrics.SetGauge([]string{automationMetrics, "plans"}, float32(plan.ID))

	return plan.ID, nil
}

// ExecutePlan grants dex the plan amount of allowance on top of what it
// already has and calls dex with payload. Only one execution can be in
// flight at a time, nested calls fail with ErrReentrantCall.
//
// When the dex call fails the allowance already granted is kept.
func (e *Executor) ExecutePlan(planID uint64, dex types.Address, payload []byte) (*Execution, error) {
	if !e.executing.CompareAndSwap(false, true) {
		metrics.IncrCounter([]string{automationMetrics, "execute", "reentrant"}, 1)

		return nil, ErrReentrantCall
	}
	defer e.executing.Store(false)

	execution := &Execution{
		ID:     uuid.New().String(),
		PlanID: planID,
		Dex:    dex,
	}

	logger := e.logger.With("execution", execution.ID, "plan", planID, "dex", dex)

	plan, now, err := e.checkExecution(planID, dex)
	if err != nil {
		logger.Debug("plan execution rejected", "err", err)
		metrics.IncrCounter([]string{automationMetrics, "execute", "rejected"}, 1)

		return nil, err
	}

	// token allowance, cumulative across executions
	if err := e.increaseAllowance(plan.TokenIn, dex, plan.Amount); err != nil {
		logger.Debug("allowance increase failed", "token", plan.TokenIn, "err", err)
		metrics.IncrCounter([]string{automationMetrics, "execute", "failed"}, 1)

		return nil, err
	}

	result := e.host.Callx(runtime.NewContractCall(1, e.addr, dex, big.NewInt(0), swapCallGas, payload), e.host)
	if result.Failed() {
		logger.Debug("swap call failed", "err", result.Err)
		metrics.IncrCounter([]string{automationMetrics, "execute", "failed"}, 1)

		return nil, newEndpointError(dex, result.ReturnValue, result.Err)
	}

	if err := e.markExecuted(planID, now); err != nil {
		return nil, err
	}

	execution.Timestamp = now
	execution.Allowance = new(big.Int).Set(plan.Amount)
	execution.ReturnData = result.ReturnValue

	e.emitPlanExecuted(planID, dex, now)
	logger.Info("plan executed", "timestamp", now, "amount", plan.Amount)
	metrics.IncrCounter([]string{automationMetrics, "execute", "success"}, 1)

	return execution, nil
}

// checkExecution validates the preconditions of an execution without mutating anything
func (e *Executor) checkExecution(planID uint64, dex types.Address) (*types.Plan, uint64, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	plan, ok, err := e.store.ReadPlan(planID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read plan: %w", err)
	}

	if !ok || !plan.Active {
		return nil, 0, ErrPlanInactive
	}

	if !e.IsWhitelisted(dex) {
		return nil, 0, ErrDexNotWhitelisted
	}

	now := e.now()
	if now < plan.NextExecutionTime() {
		return nil, 0, fmt.Errorf("%w: next execution at %d, now %d", ErrTooEarly, plan.NextExecutionTime(), now)
	}

	return plan, now, nil
}

// markExecuted re-reads the plan, the dex call may have touched it
func (e *Executor) markExecuted(planID uint64, now uint64) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	plan, ok, err := e.store.ReadPlan(planID)
	if err != nil {
		return fmt.Errorf("failed to read plan: %w", err)
	}

	if !ok {
		return ErrPlanNotFound
	}

	if now > plan.LastExecutionTime {
		plan.LastExecutionTime = now
	}

	if err := e.store.WritePlan(plan); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	return nil
}

func (e *Executor) increaseAllowance(token, spender types.Address, amount *big.Int) error {
	input, err := IncreaseAllowanceFunc.Encode([]interface{}{spender, amount})
	if err != nil {
		return err
	}

	result := e.host.Callx(runtime.NewContractCall(1, e.addr, token, big.NewInt(0), allowanceCallGas, input), e.host)
	if result.Failed() {
		return newEndpointError(token, result.ReturnValue, result.Err)
	}

	// tokens that return nothing are accepted, an explicit false is not
	if len(result.ReturnValue) == types.HashLength && types.BytesToHash(result.ReturnValue) == types.ZeroHash {
		return newEndpointError(token, result.ReturnValue, runtime.ErrExecutionReverted)
	}

	return nil
}

// CancelPlan deactivates a plan for good. Unknown ids fail with
// ErrPlanNotFound and already cancelled plans with ErrPlanInactive.
func (e *Executor) CancelPlan(planID uint64) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	plan, ok, err := e.store.ReadPlan(planID)
	if err != nil {
		return fmt.Errorf("failed to read plan: %w", err)
	}

	if !ok {
		return ErrPlanNotFound
	}

	if !plan.Active {
		return ErrPlanInactive
	}

	plan.Active = false

	if err := e.store.WritePlan(plan); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	e.emitPlanCancelled(planID)
	e.logger.Info("plan cancelled", "id", planID)
	metrics.IncrCounter([]string{automationMetrics, "plan", "cancelled"}, 1)

	return nil
}

// Plan returns a plan by id
func (e *Executor) Plan(planID uint64) (*types.Plan, error) {
	plan, ok, err := e.store.ReadPlan(planID)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrPlanNotFound
	}

	return plan, nil
}

// Plans returns every plan ever created, cancelled ones included
func (e *Executor) Plans() ([]*types.Plan, error) {
	last, err := e.store.ReadPlanCounter()
	if err != nil {
		return nil, err
	}

	plans := make([]*types.Plan, 0, last)

	for id := uint64(1); id <= last; id++ {
		plan, err := e.Plan(id)
		if errors.Is(err, ErrPlanNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		plans = append(plans, plan)
	}

	return plans, nil
}
