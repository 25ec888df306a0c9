package engine

import "gharkharch/internal/core"

// BankHealth is the display classification of a bank balance.
type BankHealth string

const (
	Healthy    BankHealth = "Healthy"
	LowBalance BankHealth = "Low Balance"
)

// BankBalance computes the current balance of a bank: initial balance plus
// recorded credit transactions minus Bank/UPI expenses drawn on it. There is
// no stored balance field; the result is always derived from the full
// transaction and expense history, so it can never drift from the records.
func BankBalance(bank core.Bank, transactions []core.BankTransaction, expenses []core.Expense) core.Money {
	balance := bank.InitialBalance
	for _, tx := range transactions {
		if tx.BankID == bank.ID && tx.Kind == core.TxCredit {
			balance = balance.Add(tx.Amount)
		}
	}
	for _, e := range expenses {
		if e.BankID == bank.ID && e.PaymentMode.UsesBank() {
			balance = balance.Sub(e.Amount)
		}
	}
	return balance
}

// TotalBankBalance sums BankBalance over all banks.
func TotalBankBalance(banks []core.Bank, transactions []core.BankTransaction, expenses []core.Expense) core.Money {
	var total core.Money
	for _, b := range banks {
		total = total.Add(BankBalance(b, transactions, expenses))
	}
	return total
}

// HealthOf classifies a balance for display. Zero counts as low.
func HealthOf(balance core.Money) BankHealth {
	if balance.Cents > 0 {
		return Healthy
	}
	return LowBalance
}
