// Package gramsvc has services for interacting with the normalization server
// backend decoupled from the API that accesses it.
package gramsvc

import (
	"encoding/base64"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/serr"
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt cost used for passwords when Service.HashCost
// is not set.
const DefaultHashCost = 14

// Service is a service for interacting with and modifying the normalization
// server backend. It performs the actions requested and makes calls to server
// persistence to preserve the backend state.
//
// The zero-value of Service is not ready to be used; assign a valid DAO store
// to DB before attempting to use it.
type Service struct {

	// DB is the persistence store of the service.
	DB dao.Store

	// HashCost is the bcrypt cost of stored password hashes. If less than
	// bcrypt.MinCost, DefaultHashCost is used.
	HashCost int
}

func (svc Service) hashPassword(password string) (string, error) {
	cost := svc.HashCost
	if cost < bcrypt.MinCost {
		cost = DefaultHashCost
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if err == bcrypt.ErrPasswordTooLong {
			return "", serr.New("password is too long", err, serr.ErrBadArgument)
		}
		return "", serr.New("password could not be encrypted", err)
	}

	return base64.StdEncoding.EncodeToString(passHash), nil
}
