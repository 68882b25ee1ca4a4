// Package query implements the attribute predicate language over drone
// records (C4 in SPEC_FULL.md): single-attribute path matching and the
// structured multi-query AND combinator.
//
// Grounded on the teacher's own small-predicate style in
// race.IceLimits.IsInIceLimits (a handful of typed field comparisons
// driving a single boolean) and, for the attribute-table idea itself,
// on the pack's boguszjelinski-kapi taxi-matching model (attribute-keyed
// eligibility checks against a vehicle record).
package query

import (
	"strconv"
	"strings"

	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/domain"
)

// Attribute identifies one queryable drone field.
type Attribute string

const (
	AttrID          Attribute = "id"
	AttrName        Attribute = "name"
	AttrCooling     Attribute = "cooling"
	AttrHeating     Attribute = "heating"
	AttrCapacity    Attribute = "capacity"
	AttrMaxMoves    Attribute = "maxMoves"
	AttrCostPerMove Attribute = "costPerMove"
	AttrCostInitial Attribute = "costInitial"
	AttrCostFinal   Attribute = "costFinal"
)

type kind int

const (
	kindUnknown kind = iota
	kindString
	kindBool
	kindNumber
)

func attributeKind(a Attribute) kind {
	switch a {
	case AttrID, AttrName:
		return kindString
	case AttrCooling, AttrHeating:
		return kindBool
	case AttrCapacity, AttrMaxMoves, AttrCostPerMove, AttrCostInitial, AttrCostFinal:
		return kindNumber
	default:
		return kindUnknown
	}
}

// attributeValue renders a drone's attribute as a string, the same
// representation single-attribute matching compares against. Absent
// capability makes every capability attribute read as its zero value.
func attributeValue(d domain.Drone, a Attribute) (string, kind) {
	switch a {
	case AttrID:
		return d.ID, kindString
	case AttrName:
		return d.Name, kindString
	case AttrCooling:
		if d.Capability == nil {
			return "false", kindBool
		}
		return strconv.FormatBool(d.Capability.Cooling), kindBool
	case AttrHeating:
		if d.Capability == nil {
			return "false", kindBool
		}
		return strconv.FormatBool(d.Capability.Heating), kindBool
	case AttrCapacity:
		if d.Capability == nil {
			return "0", kindNumber
		}
		return strconv.FormatFloat(d.Capability.Capacity, 'f', -1, 64), kindNumber
	case AttrMaxMoves:
		if d.Capability == nil {
			return "0", kindNumber
		}
		return strconv.Itoa(d.Capability.MaxMoves), kindNumber
	case AttrCostPerMove:
		if d.Capability == nil {
			return "0", kindNumber
		}
		return strconv.FormatFloat(d.Capability.CostPerMove, 'f', -1, 64), kindNumber
	case AttrCostInitial:
		if d.Capability == nil {
			return "0", kindNumber
		}
		return strconv.FormatFloat(d.Capability.CostInitial, 'f', -1, 64), kindNumber
	case AttrCostFinal:
		if d.Capability == nil {
			return "0", kindNumber
		}
		return strconv.FormatFloat(d.Capability.CostFinal, 'f', -1, 64), kindNumber
	default:
		return "", kindUnknown
	}
}

// Match implements single-attribute path matching: does drone's
// attribute equal value, under the attribute's type. Unknown attributes
// and unparseable values evaluate to false.
func Match(d domain.Drone, attribute string, value string) bool {
	a := Attribute(attribute)
	k := attributeKind(a)
	if k == kindUnknown {
		return false
	}

	actual, _ := attributeValue(d, a)

	switch k {
	case kindString:
		return actual == value
	case kindBool:
		want, err := strconv.ParseBool(value)
		if err != nil {
			return false
		}
		got, _ := strconv.ParseBool(actual)
		return got == want
	case kindNumber:
		want, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		got, err := strconv.ParseFloat(actual, 64)
		if err != nil {
			return false
		}
		return got == want
	}
	return false
}

// Operator is one of the four structured-query comparison operators.
type Operator string

const (
	OpEqual    Operator = "="
	OpNotEqual Operator = "!="
	OpLess     Operator = "<"
	OpGreater  Operator = ">"
)

// Predicate is one {attribute, operator, value} entry of a structured
// query.
type Predicate struct {
	Attribute string `json:"attribute"`
	Operator  string `json:"operator"`
	Value     string `json:"value"`
}

// valid reports whether all three fields are present and non-blank.
// Invalid predicates are silently dropped before matching, per spec.md
// §4.4/§9 — a contract, not a bug: an empty surviving predicate set
// matches every drone (vacuous truth).
func (q Predicate) valid() bool {
	return strings.TrimSpace(q.Attribute) != "" &&
		strings.TrimSpace(q.Operator) != "" &&
		strings.TrimSpace(q.Value) != ""
}

// matches evaluates a single valid predicate against a drone. Any
// operator/kind combination outside the allowed set (string/bool: "=",
// numeric: all four) evaluates to false, as does an unparseable numeric
// value.
func (q Predicate) matches(d domain.Drone) bool {
	a := Attribute(q.Attribute)
	k := attributeKind(a)
	if k == kindUnknown {
		return false
	}

	actual, _ := attributeValue(d, a)
	op := Operator(q.Operator)

	switch k {
	case kindString, kindBool:
		if op != OpEqual {
			return false
		}
		if k == kindBool {
			want, err := strconv.ParseBool(q.Value)
			if err != nil {
				return false
			}
			got, _ := strconv.ParseBool(actual)
			return got == want
		}
		return actual == q.Value
	case kindNumber:
		want, err := strconv.ParseFloat(q.Value, 64)
		if err != nil {
			return false
		}
		got, err := strconv.ParseFloat(actual, 64)
		if err != nil {
			return false
		}
		switch op {
		case OpEqual:
			return got == want
		case OpNotEqual:
			return got != want
		case OpLess:
			return got < want
		case OpGreater:
			return got > want
		default:
			return false
		}
	}
	return false
}

// MatchAll implements the structured multi-query AND combinator: every
// valid predicate in queries must match d. Invalid predicates are
// dropped first, so a queries slice with no valid entries matches
// everything.
func MatchAll(d domain.Drone, queries []Predicate) bool {
	for _, q := range queries {
		if !q.valid() {
			continue
		}
		if !q.matches(d) {
			return false
		}
	}
	return true
}

// Filter returns the ids of every drone in drones matching all valid
// queries, preserving input order.
func Filter(drones []domain.Drone, queries []Predicate) []string {
	var ids []string
	for _, d := range drones {
		if MatchAll(d, queries) {
			ids = append(ids, d.ID)
		}
	}
	return ids
}
