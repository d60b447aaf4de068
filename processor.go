package payments

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

// Policy holds the configurable rules of the dispute life-cycle.
//
// The zero value is the conservative policy: only deposits are disputable, a
// transaction goes through a single dispute, and any record opens its client
// account.
type Policy struct {
	// DisputeWithdrawals makes withdrawals disputable too.
	DisputeWithdrawals bool
	// Redispute allows a resolved transaction to be disputed again.
	// A charged back transaction is always final.
	Redispute bool
	// StrictAccounts restricts account creation to deposits: any other record
	// for an unknown client is rejected.
	StrictAccounts bool
}

// DefaultPolicy returns the conservative policy.
func DefaultPolicy() Policy { return Policy{} }

// Stats counts what happened to the records of a run.
type Stats struct {
	Records  int            // Records is the number of records processed.
	Applied  int            // Applied is the number of records committed to the ledger.
	Rejected int            // Rejected is the number of records skipped.
	ByRule   map[string]int // ByRule counts rejections by violated rule.
}

// Processor applies transactions, in order, to a Store.
//
// It is the only writer of its Store. Every record is either fully applied
// or not at all.
type Processor struct {
	store      *Store
	policy     Policy
	logger     *log.Logger
	index      int
	stats      Stats
	rejections []*RecordError
}

// NewProcessor creates a processor writing into 'store'. A nil logger uses the
// default logger.
func NewProcessor(store *Store, policy Policy, logger *log.Logger) *Processor {
	if logger == nil {
		logger = log.Default()
	}
	return &Processor{
		store:  store,
		policy: policy,
		logger: logger,
		stats:  Stats{ByRule: make(map[string]int)},
	}
}

// Run processes all the records from 'r' until io.EOF.
//
// Rejected records are logged, counted, and skipped. A record that cannot be
// read aborts the run and the error is returned.
func (p *Processor) Run(r Reader) error {
	for {
		tx, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("cannot read record %d: %w", p.index+1, err)
		}
		// rejections are already logged and recorded.
		_ = p.Process(tx)
	}
}

// Process applies a single transaction. It returns a *RecordError if the
// transaction is rejected, in which case the ledger is unchanged.
func (p *Processor) Process(tx Transaction) error {
	p.index++
	p.stats.Records++

	if err := p.apply(tx); err != nil {
		rerr := &RecordError{Index: p.index, Type: tx.What(), TxID: tx.ID(), ClientID: tx.Client(), Err: err}
		p.stats.Rejected++
		p.stats.ByRule[rerr.Rule()]++
		p.rejections = append(p.rejections, rerr)
		p.logger.Warn("record rejected",
			"record", p.index, "type", tx.What(), "tx", tx.ID(), "client", tx.Client(),
			"rule", rerr.Rule(), "err", err)
		return rerr
	}
	p.stats.Applied++
	p.logger.Debug("record applied", "record", p.index, "type", tx.What(), "tx", tx.ID(), "client", tx.Client())
	return nil
}

// Stats returns the counters of the run so far.
func (p *Processor) Stats() Stats {
	s := p.stats
	s.ByRule = make(map[string]int, len(p.stats.ByRule))
	for k, v := range p.stats.ByRule {
		s.ByRule[k] = v
	}
	return s
}

// Rejections returns the rejected records, in input order.
func (p *Processor) Rejections() []*RecordError { return slices.Clone(p.rejections) }

// Snapshot returns the current state of all accounts.
func (p *Processor) Snapshot() Snapshot { return p.store.Snapshot() }

func (p *Processor) apply(tx Transaction) error {
	acc, err := p.account(tx)
	if err != nil {
		return err
	}
	if acc.Locked {
		return ErrAccountLocked
	}
	switch v := tx.(type) {
	case Deposit:
		return p.deposit(acc, v)
	case Withdrawal:
		return p.withdraw(acc, v)
	case Dispute:
		return p.dispute(acc, v)
	case Resolve:
		return p.resolve(acc, v)
	case Chargeback:
		return p.chargeback(acc, v)
	default:
		return fmt.Errorf("unsupported transaction type %T", tx)
	}
}

// account returns the account addressed by tx, creating it when the policy
// allows it.
func (p *Processor) account(tx Transaction) (*Account, error) {
	if p.policy.StrictAccounts && tx.What() != TypeDeposit {
		acc, ok := p.store.Account(tx.Client())
		if !ok {
			return nil, ErrUnknownAccount
		}
		return acc, nil
	}
	return p.store.GetOrCreateAccount(tx.Client()), nil
}

func (p *Processor) deposit(acc *Account, tx Deposit) error {
	if p.store.Used(tx.TxID) {
		return &DuplicateTransactionError{TxID: tx.TxID}
	}
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("%w, got %s", ErrInvalidAmount, tx.Amount)
	}
	available, err := acc.Available.Add(tx.Amount)
	if err != nil {
		return err
	}
	// total must remain representable.
	if _, err := available.Add(acc.Held); err != nil {
		return err
	}
	if err := p.store.RecordDeposit(tx.TxID, tx.ClientID, tx.Amount); err != nil {
		return err
	}
	acc.Available = available
	return nil
}

func (p *Processor) withdraw(acc *Account, tx Withdrawal) error {
	if p.store.Used(tx.TxID) {
		return &DuplicateTransactionError{TxID: tx.TxID}
	}
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("%w, got %s", ErrInvalidAmount, tx.Amount)
	}
	if acc.Available.LessThan(tx.Amount) {
		return &InsufficientFundsError{ClientID: acc.ClientID, Available: acc.Available, Requested: tx.Amount}
	}
	available, err := acc.Available.Sub(tx.Amount)
	if err != nil {
		return err
	}
	if err := p.store.RecordWithdrawal(tx.TxID, tx.ClientID, tx.Amount, p.policy.DisputeWithdrawals); err != nil {
		return err
	}
	acc.Available = available
	return nil
}

// target returns the disputable transaction referenced by tx.
func (p *Processor) target(tx Transaction) (*Disputable, error) {
	d, ok := p.store.LookupDisputable(tx.ID())
	if !ok {
		if p.store.Used(tx.ID()) {
			return nil, fmt.Errorf("tx %d: %w", tx.ID(), ErrNotDisputable)
		}
		return nil, fmt.Errorf("tx %d: %w", tx.ID(), ErrUnknownTransaction)
	}
	if d.ClientID != tx.Client() {
		return nil, fmt.Errorf("tx %d is owned by client %d: %w", d.TxID, d.ClientID, ErrClientMismatch)
	}
	return d, nil
}

func (p *Processor) dispute(acc *Account, tx Dispute) error {
	d, err := p.target(tx)
	if err != nil {
		return err
	}
	switch {
	case d.State == StateNone:
	case d.State == StateResolved && p.policy.Redispute:
	default:
		return fmt.Errorf("cannot dispute tx %d in state %s: %w", d.TxID, d.State, ErrInvalidState)
	}

	available, held := acc.Available, acc.Held
	if held, err = held.Add(d.Amount); err != nil {
		return err
	}
	if d.Kind == TypeDeposit {
		if available, err = available.Sub(d.Amount); err != nil {
			return err
		}
	} else if _, err := available.Add(held); err != nil {
		// a disputed withdrawal increases the total.
		return err
	}

	acc.Available, acc.Held = available, held
	d.State = StateDisputed
	return nil
}

func (p *Processor) resolve(acc *Account, tx Resolve) error {
	d, err := p.target(tx)
	if err != nil {
		return err
	}
	if d.State != StateDisputed {
		return fmt.Errorf("cannot resolve tx %d in state %s: %w", d.TxID, d.State, ErrInvalidState)
	}

	available, held := acc.Available, acc.Held
	if held, err = held.Sub(d.Amount); err != nil {
		return err
	}
	if d.Kind == TypeDeposit {
		if available, err = available.Add(d.Amount); err != nil {
			return err
		}
	}

	acc.Available, acc.Held = available, held
	d.State = StateResolved
	return nil
}

func (p *Processor) chargeback(acc *Account, tx Chargeback) error {
	d, err := p.target(tx)
	if err != nil {
		return err
	}
	if d.State != StateDisputed {
		return fmt.Errorf("cannot charge back tx %d in state %s: %w", d.TxID, d.State, ErrInvalidState)
	}

	available, held := acc.Available, acc.Held
	if held, err = held.Sub(d.Amount); err != nil {
		return err
	}
	if d.Kind == TypeWithdrawal {
		// the withdrawal is reversed.
		if available, err = available.Add(d.Amount); err != nil {
			return err
		}
	}

	acc.Available, acc.Held = available, held
	acc.Locked = true
	d.State = StateChargedBack
	p.logger.Info("account locked", "client", acc.ClientID, "tx", d.TxID)
	return nil
}
