package operator

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound       = errors.New("operator not found")
	ErrDuplicateEmail = errors.New("operator email already registered")
	ErrInvalidRole    = errors.New("invalid operator role")
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleCashier  Role = "cashier"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleCashier:
		return true
	}

	return false
}

// Permissions lists the back-office sections an operator may use.
type Permissions struct {
	Clients      bool `json:"clients"`
	Providers    bool `json:"providers"`
	Banks        bool `json:"banks"`
	Cryptos      bool `json:"cryptos"`
	Currencies   bool `json:"currencies"`
	Operators    bool `json:"operators"`
	Transactions bool `json:"transactions"`
	Reports      bool `json:"reports"`
}

// AllPermissions is granted to admins regardless of what is stored.
var AllPermissions = Permissions{
	Clients: true, Providers: true, Banks: true, Cryptos: true,
	Currencies: true, Operators: true, Transactions: true, Reports: true,
}

type Operator struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	Permissions  Permissions `json:"permissions"`
	Active       bool        `json:"active"`
	CreatedAt    *time.Time  `json:"createdAt,omitempty"`
}

// Effective returns the permissions that apply to the operator.
func (o *Operator) Effective() Permissions {
	if o.Role == RoleAdmin {
		return AllPermissions
	}

	return o.Permissions
}

// CheckPassword reports whether password matches the stored hash.
func (o *Operator) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(password)) == nil
}

// HashPassword hashes password with the given bcrypt cost; zero means bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}
