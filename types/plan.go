package types

import (
	"fmt"
	"math"
	"math/big"

	"github.com/umbracle/fastrlp"
)

// Plan is a recurring instruction to swap Amount of TokenIn for TokenOut
// no more often than every Interval seconds
type Plan struct {
	ID                uint64   `json:"id"`
	TokenIn           Address  `json:"tokenIn"`
	TokenOut          Address  `json:"tokenOut"`
	Amount            *big.Int `json:"amount"`
	Interval          uint64   `json:"interval"`
	LastExecutionTime uint64   `json:"lastExecutionTime"`
	Active            bool     `json:"active"`
}

// NextExecutionTime is the earliest timestamp at which the plan can run again.
// It saturates instead of overflowing.
func (p *Plan) NextExecutionTime() uint64 {
	if p.LastExecutionTime > math.MaxUint64-p.Interval {
		return math.MaxUint64
	}

	return p.LastExecutionTime + p.Interval
}

// Copy returns a deep copy of the plan
func (p *Plan) Copy() *Plan {
	pp := new(Plan)
	*pp = *p

	if p.Amount != nil {
		pp.Amount = new(big.Int).Set(p.Amount)
	}

	return pp
}

func (p *Plan) MarshalRLP() []byte {
	return p.MarshalRLPTo(nil)
}

func (p *Plan) MarshalRLPTo(dst []byte) []byte {
	ar := fastrlp.DefaultArenaPool.Get()
	defer fastrlp.DefaultArenaPool.Put(ar)

	return p.MarshalRLPWith(ar).MarshalTo(dst)
}

func (p *Plan) MarshalRLPWith(a *fastrlp.Arena) *fastrlp.Value {
	vv := a.NewArray()

	vv.Set(a.NewUint(p.ID))
	vv.Set(a.NewBytes(p.TokenIn.Bytes()))
	vv.Set(a.NewBytes(p.TokenOut.Bytes()))

	if p.Amount == nil {
		vv.Set(a.NewBigInt(big.NewInt(0)))
	} else {
		vv.Set(a.NewBigInt(p.Amount))
	}

	vv.Set(a.NewUint(p.Interval))
	vv.Set(a.NewUint(p.LastExecutionTime))

	if p.Active {
		vv.Set(a.NewUint(1))
	} else {
		vv.Set(a.NewUint(0))
	}

	return vv
}

func (p *Plan) UnmarshalRLP(input []byte) error {
	pr := fastrlp.DefaultParserPool.Get()
	defer fastrlp.DefaultParserPool.Put(pr)

	v, err := pr.Parse(input)
	if err != nil {
		return err
	}

	return p.UnmarshalRLPFrom(pr, v)
}

func (p *Plan) UnmarshalRLPFrom(_ *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := v.GetElems()
	if err != nil {
		return err
	}

	if len(elems) != 7 {
		return fmt.Errorf("incorrect number of elements to decode plan, expected 7 but found %d", len(elems))
	}

	if p.ID, err = elems[0].GetUint64(); err != nil {
		return err
	}

	if err = elems[1].GetAddr(p.TokenIn[:]); err != nil {
		return err
	}

	if err = elems[2].GetAddr(p.TokenOut[:]); err != nil {
		return err
	}

	p.Amount = new(big.Int)
	if err = elems[3].GetBigInt(p.Amount); err != nil {
		return err
	}

	if p.Interval, err = elems[4].GetUint64(); err != nil {
		return err
	}

	if p.LastExecutionTime, err = elems[5].GetUint64(); err != nil {
		return err
	}

	active, err := elems[6].GetUint64()
	if err != nil {
		return err
	}

	p.Active = active == 1

	return nil
}
