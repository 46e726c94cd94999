package api

import (
	"time"

	"github.com/dekarrin/chomsky/grammar"
	"github.com/dekarrin/chomsky/internal/gfile"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/gramsvc"
)

// note that these are *not* the DAO models; those are distinct and closer to
// the DB format they are in. Rather these are the models that are received from
// and sent to the client.

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type InfoModel struct {
	Version struct {
		Server  string `json:"server"`
		Chomsky string `json:"chomsky"`
	} `json:"version"`
}

type UserModel struct {
	URI            string `json:"uri"`
	ID             string `json:"id,omitempty"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role,omitempty"`
	Created        string `json:"created,omitempty"`
	Modified       string `json:"modified,omitempty"`
	LastLogoutTime string `json:"last_logout,omitempty"`
	LastLoginTime  string `json:"last_login,omitempty"`
}

func userModel(u dao.User) UserModel {
	m := UserModel{
		URI:            PathPrefix + "/users/" + u.ID.String(),
		ID:             u.ID.String(),
		Username:       u.Username,
		Role:           u.Role.String(),
		Created:        u.Created.Format(time.RFC3339),
		Modified:       u.Modified.Format(time.RFC3339),
		LastLogoutTime: u.LastLogoutTime.Format(time.RFC3339),
		LastLoginTime:  u.LastLoginTime.Format(time.RFC3339),
	}
	if u.Email != nil {
		m.Email = u.Email.Address
	}
	return m
}

// GrammarLiteral is a grammar as sent over the wire. Rules use the text syntax
// "A -> x y | z | ε". If NonTerminals or Terminals are given, every symbol must
// be declared in one of them; otherwise symbol kinds are inferred from the
// rules.
type GrammarLiteral struct {
	Start        string   `json:"start"`
	NonTerminals []string `json:"nonterminals,omitempty"`
	Terminals    []string `json:"terminals,omitempty"`
	Rules        []string `json:"rules"`
}

func (gl GrammarLiteral) data() gfile.GrammarData {
	return gfile.GrammarData{
		Start:        gl.Start,
		NonTerminals: gl.NonTerminals,
		Terminals:    gl.Terminals,
		Rules:        gl.Rules,
	}
}

func grammarLiteral(g *grammar.Grammar) GrammarLiteral {
	gd := gfile.DataOf(g)
	return GrammarLiteral{
		Start:        gd.Start,
		NonTerminals: gd.NonTerminals,
		Terminals:    gd.Terminals,
		Rules:        gd.Rules,
	}
}

type OptionsModel struct {
	IsolateStart bool `json:"isolate_start"`
	Reprune      bool `json:"reprune"`
}

func (om OptionsModel) options() grammar.Options {
	return grammar.Options{IsolateStart: om.IsolateStart, Reprune: om.Reprune}
}

func optionsModel(opts grammar.Options) OptionsModel {
	return OptionsModel{IsolateStart: opts.IsolateStart, Reprune: opts.Reprune}
}

type StepModel struct {
	Stage              string `json:"stage"`
	NonTerminalsBefore int    `json:"nonterminals_before"`
	NonTerminalsAfter  int    `json:"nonterminals_after"`
	ProductionsBefore  int    `json:"productions_before"`
	ProductionsAfter   int    `json:"productions_after"`
}

func stepModels(steps []grammar.StepResult) []StepModel {
	models := make([]StepModel, len(steps))
	for i, st := range steps {
		models[i] = StepModel{
			Stage:              st.Stage.String(),
			NonTerminalsBefore: st.NonTerminalsBefore,
			NonTerminalsAfter:  st.NonTerminalsAfter,
			ProductionsBefore:  st.ProductionsBefore,
			ProductionsAfter:   st.ProductionsAfter,
		}
	}
	return models
}

type NormalizeRequest struct {
	Grammar GrammarLiteral `json:"grammar"`
	Options OptionsModel   `json:"options"`
}

type NormalizeResponse struct {
	Original   GrammarLiteral `json:"original"`
	Normalized GrammarLiteral `json:"normalized"`
	Display    string         `json:"display"`
	Steps      []StepModel    `json:"steps"`
}

func normalizeResponse(norm gramsvc.Normalization) NormalizeResponse {
	return NormalizeResponse{
		Original:   grammarLiteral(norm.Original),
		Normalized: grammarLiteral(norm.Normalized),
		Display:    norm.Normalized.Display(),
		Steps:      stepModels(norm.Steps),
	}
}

type GrammarCreateRequest struct {
	Name    string         `json:"name"`
	Grammar GrammarLiteral `json:"grammar"`
	Options OptionsModel   `json:"options"`
}

type GrammarModel struct {
	URI        string          `json:"uri"`
	ID         string          `json:"id"`
	Owner      string          `json:"owner"`
	Name       string          `json:"name"`
	Original   GrammarLiteral  `json:"original"`
	Normalized *GrammarLiteral `json:"normalized,omitempty"`
	Options    OptionsModel    `json:"options"`
	Created    string          `json:"created"`
	Modified   string          `json:"modified"`
}

func grammarModel(g dao.Grammar) GrammarModel {
	m := GrammarModel{
		URI:      PathPrefix + "/grammars/" + g.ID.String(),
		ID:       g.ID.String(),
		Owner:    g.Owner.String(),
		Name:     g.Name,
		Original: grammarLiteral(g.Original),
		Options:  optionsModel(g.Options),
		Created:  g.Created.Format(time.RFC3339),
		Modified: g.Modified.Format(time.RFC3339),
	}
	if g.IsNormalized() {
		lit := grammarLiteral(g.Normalized)
		m.Normalized = &lit
	}
	return m
}

// CNFRequest is the optional body of a request to normalize a stored grammar.
// If Options is omitted, the stored options are used.
type CNFRequest struct {
	Options *OptionsModel `json:"options,omitempty"`
}

type CNFResponse struct {
	Grammar GrammarModel `json:"grammar"`
	Display string       `json:"display"`
	Steps   []StepModel  `json:"steps"`
}

type AcceptsRequest struct {
	Input string `json:"input"`
}

type AcceptsResponse struct {
	Input      string   `json:"input"`
	Tokens     []string `json:"tokens"`
	Original   bool     `json:"original"`
	Normalized bool     `json:"normalized"`
}
