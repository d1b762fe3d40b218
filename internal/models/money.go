package models

import "strconv"

// Money is an amount in the smallest currency unit (VND has none, so whole
// dong). Integer arithmetic only; float drift is not acceptable on receipts.
type Money int64

func (m Money) String() string {
	return strconv.FormatInt(int64(m), 10)
}

// Size is a drink size variant. Flat-priced products carry no size.
type Size string

const (
	SizeS Size = "S"
	SizeM Size = "M"
	SizeL Size = "L"
)

// Sizes lists every size a sized product must price.
var Sizes = []Size{SizeS, SizeM, SizeL}

func (s Size) Valid() bool {
	for _, known := range Sizes {
		if s == known {
			return true
		}
	}
	return false
}

// Role of the actor performing an operation. Sessions and login live outside
// the engine; handlers resolve the role and pass it down.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// CanManage reports whether the role may edit the menu or cancel orders.
func (r Role) CanManage() bool {
	return r == RoleAdmin
}

// PaymentMethod is how an order was settled.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentTransfer
}
