package checkout

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/tanzeelaayaz69/kashcart/internal/domain"
)

type Charge struct {
	TransactionID string
	Approved      bool
	Reason        string
}

// PaymentGateway charges and refunds the customer. Declines are reported in
// Charge; errors mean the gateway itself failed.
type PaymentGateway interface {
	Charge(ctx context.Context, namespace string, amount int64, method domain.PaymentMethod) (Charge, error)
	Refund(ctx context.Context, transactionID string) error
}

var declineReasons = [...]string{
	"insufficient funds",
	"card expired",
	"bank server unreachable",
	"transaction limit exceeded",
	"suspected fraud",
}

// SimulatedGateway approves every charge except a configurable share of
// prepaid ones. Cash on delivery is never declined.
type SimulatedGateway struct {
	// DeclinePercent is 0..100.
	DeclinePercent int
	roll           func() int
}

func NewSimulatedGateway(declinePercent int) *SimulatedGateway {
	return &SimulatedGateway{
		DeclinePercent: declinePercent,
		roll:           func() int { return rand.Intn(100) },
	}
}

func (g *SimulatedGateway) Charge(_ context.Context, _ string, amount int64, method domain.PaymentMethod) (Charge, error) {
	if amount < 0 {
		return Charge{}, fmt.Errorf("invalid charge amount %d", amount)
	}
	txID := fmt.Sprintf("TXN-%s", uuid.NewString())
	if method == domain.PaymentCOD {
		return Charge{TransactionID: txID, Approved: true}, nil
	}
	return decide(txID, g.roll(), g.DeclinePercent), nil
}

func decide(txID string, roll, declinePercent int) Charge {
	if roll >= declinePercent {
		return Charge{TransactionID: txID, Approved: true}
	}
	return Charge{TransactionID: txID, Reason: declineReasons[roll%len(declineReasons)]}
}

// Refund always succeeds.
func (*SimulatedGateway) Refund(context.Context, string) error {
	return nil
}
