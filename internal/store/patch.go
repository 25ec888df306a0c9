package store

import (
	"fmt"
	"time"

	"gharkharch/internal/core"
)

// Partial-field patches shared by the backends: apply a field subset to an
// existing record, read-modify-write style. Unknown fields are rejected
// before anything is written. Field names follow the wire names the original
// records were stored under.

func PatchExpense(e core.Expense, fields map[string]any) (core.Expense, error) {
	for k, v := range fields {
		var err error
		switch k {
		case "item":
			e.Item, err = asString(k, v)
		case "category":
			e.Category, err = asString(k, v)
		case "amount":
			e.Amount, err = asMoney(k, v)
		case "quantity":
			e.Quantity, err = asFloat(k, v)
		case "unit":
			e.Unit, err = asString(k, v)
		case "date":
			e.Date, err = asDate(k, v)
		case "paymentMode":
			var s string
			if s, err = asString(k, v); err == nil {
				e.PaymentMode = core.PaymentMode(s)
			}
		case "cardId":
			e.CardID, err = asString(k, v)
		case "bankId":
			e.BankID, err = asString(k, v)
		case "updatedAt":
			var t time.Time
			if t, err = asTime(k, v); err == nil {
				e.UpdatedAt = t
			}
		default:
			return e, fmt.Errorf("unknown expense field %q", k)
		}
		if err != nil {
			return e, err
		}
	}
	return e, nil
}

func PatchCreditCard(c core.CreditCard, fields map[string]any) (core.CreditCard, error) {
	for k, v := range fields {
		var err error
		switch k {
		case "name":
			c.Name, err = asString(k, v)
		case "limit":
			c.Limit, err = asMoney(k, v)
		case "billDay":
			c.BillDay, err = asInt(k, v)
		case "dueDay":
			c.DueDay, err = asInt(k, v)
		default:
			return c, fmt.Errorf("unknown credit card field %q", k)
		}
		if err != nil {
			return c, err
		}
	}
	return c, nil
}

func PatchBank(b core.Bank, fields map[string]any) (core.Bank, error) {
	for k, v := range fields {
		var err error
		switch k {
		case "name":
			b.Name, err = asString(k, v)
		case "initialBalance":
			b.InitialBalance, err = asMoney(k, v)
		default:
			return b, fmt.Errorf("unknown bank field %q", k)
		}
		if err != nil {
			return b, err
		}
	}
	return b, nil
}

func PatchBankTransaction(t core.BankTransaction, fields map[string]any) (core.BankTransaction, error) {
	for k, v := range fields {
		var err error
		switch k {
		case "amount":
			t.Amount, err = asMoney(k, v)
		case "description":
			t.Description, err = asString(k, v)
		case "date":
			t.Date, err = asDate(k, v)
		default:
			return t, fmt.Errorf("unknown bank transaction field %q", k)
		}
		if err != nil {
			return t, err
		}
	}
	return t, nil
}

func asString(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T", field, v)
	}
	return s, nil
}

func asMoney(field string, v any) (core.Money, error) {
	m, ok := v.(core.Money)
	if !ok {
		return core.Money{}, fmt.Errorf("field %q: expected Money, got %T", field, v)
	}
	return m, nil
}

func asInt(field string, v any) (int, error) {
	i, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("field %q: expected int, got %T", field, v)
	}
	return i, nil
}

func asFloat(field string, v any) (float64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("field %q: expected float64, got %T", field, v)
	}
	return f, nil
}

func asDate(field string, v any) (core.Date, error) {
	switch d := v.(type) {
	case core.Date:
		return d, nil
	case string:
		return core.ParseDate(d)
	default:
		return core.Date{}, fmt.Errorf("field %q: expected date, got %T", field, v)
	}
}

func asTime(field string, v any) (time.Time, error) {
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("field %q: expected time, got %T", field, v)
	}
	return t, nil
}
