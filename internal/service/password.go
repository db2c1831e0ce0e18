package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher encapsula el hashing de contraseñas con bcrypt.
// El costo es fijo: el trabajo por verificación queda acotado y predecible.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash genera un hash salteado; dos llamadas con el mismo plaintext
// producen salidas distintas que verifican contra el mismo plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify devuelve true solo si plaintext produjo el hash dado. Un hash
// malformado verifica false, nunca devuelve error.
func (h *PasswordHasher) Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
