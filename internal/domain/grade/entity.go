package grade

import "github.com/shopspring/decimal"

type Grade struct {
	ID          string
	CompanyID   string
	Name        string
	BasicSalary decimal.Decimal
}
