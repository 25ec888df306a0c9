package core

// Snapshot is the complete current contents of a family's four record
// collections, as delivered by the record store on every change. It carries
// no behavior; all derived values are computed by the engine package.
type Snapshot struct {
	Expenses         []Expense
	CreditCards      []CreditCard
	Banks            []Bank
	BankTransactions []BankTransaction
}

// Clone returns a copy whose slices are independent of the receiver's.
// Records themselves are value types, so a shallow slice copy suffices.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Expenses:         append([]Expense(nil), s.Expenses...),
		CreditCards:      append([]CreditCard(nil), s.CreditCards...),
		Banks:            append([]Bank(nil), s.Banks...),
		BankTransactions: append([]BankTransaction(nil), s.BankTransactions...),
	}
}
