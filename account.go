package payments

// Account is the state of a client account.
//
// Total is not stored: it is always Available + Held.
type Account struct {
	ClientID  ClientID
	Available Amount // Available funds can be withdrawn or disputed.
	Held      Amount // Held funds are frozen by open disputes.
	Locked    bool   // Locked is set by a chargeback and never cleared.
}

// NewAccount creates an empty, unlocked account.
func NewAccount(id ClientID) *Account {
	return &Account{ClientID: id}
}

// Total returns Available + Held.
//
// The processor never commits balances whose sum is not representable, so the
// addition cannot fail here.
func (a Account) Total() Amount {
	t, err := a.Available.Add(a.Held)
	if err != nil {
		panic(err)
	}
	return t
}

// MarshalJSON implements the json.Marshaler interface for Account, with keys
// in output column order.
func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("client", a.ClientID)
	w.Append("available", a.Available)
	w.Append("held", a.Held)
	w.Append("total", a.Total())
	w.Append("locked", a.Locked)
	return w.MarshalJSON()
}
