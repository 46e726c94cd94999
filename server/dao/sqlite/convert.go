package sqlite

import (
	"encoding/base64"
	"fmt"
	"net/mail"
	"strconv"
	"time"

	"github.com/dekarrin/chomsky/grammar"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = u
	return nil
}

func convertToDB_Role(r dao.Role) string {
	return strconv.Itoa(int(r))
}

func convertFromDB_Role(s string, target *dao.Role) error {
	i, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*target = dao.Role(i)
	return nil
}

func convertToDB_Email(email *mail.Address) string {
	if email == nil {
		return ""
	}
	return email.Address
}

func convertFromDB_Email(s string, target **mail.Address) error {
	if s == "" {
		*target = nil
		return nil
	}
	email, err := mail.ParseAddress(s)
	if err != nil {
		return err
	}
	*target = email
	return nil
}

// times are stored as unix seconds; the zero time is stored as 0 so that it
// comes back as the zero time.
func convertToDB_Time(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func convertFromDB_Time(i int64, target *time.Time) error {
	if i == 0 {
		*target = time.Time{}
		return nil
	}
	*target = time.Unix(i, 0)
	return nil
}

func convertToDB_Bool(b bool) int {
	if b {
		return 1
	}
	return 0
}

func convertFromDB_Bool(i int, target *bool) error {
	switch i {
	case 0:
		*target = false
	case 1:
		*target = true
	default:
		return fmt.Errorf("not 0 or 1: %d", i)
	}
	return nil
}

// grammars are stored as base64 of their rezi binary encoding. A nil grammar
// is stored as the empty string.
func convertToDB_Grammar(g *grammar.Grammar) string {
	if g == nil {
		return ""
	}
	data := rezi.EncBinary(g)
	return base64.StdEncoding.EncodeToString(data)
}

func convertFromDB_Grammar(s string, target **grammar.Grammar) error {
	if s == "" {
		*target = nil
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("decode base64: %w", err)
	}

	g := &grammar.Grammar{}
	if _, err := rezi.DecBinary(data, g); err != nil {
		return fmt.Errorf("decode grammar: %w", err)
	}
	*target = g
	return nil
}
