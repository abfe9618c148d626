// Package palette maps two-character system codes to upstream system names and fill colors.
package palette

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidColor indicates a color that is neither 6-digit RGB nor 8-digit aRGB hex.
var ErrInvalidColor = errors.New("invalid color")

// ErrInvalidCode indicates a system code that is not exactly two characters.
var ErrInvalidCode = errors.New("invalid system code")

// DefaultCode is the code of the fallback system (DWH).
const DefaultCode = "07"

// FKColor is the fixed fill used for foreign keys.
const FKColor Color = "FFD9D9D9"

// Color is an 8-digit aRGB hex color, upper-case, without a leading '#'.
type Color string

// RGB returns the trailing six digits, which is what excelize fills expect.
func (c Color) RGB() string {
	s := string(c)
	if len(s) == 8 {
		return s[2:]
	}
	return s
}

// ToARGB normalizes a hex color to 8-digit aRGB. A bare 6-digit RGB value
// gets a fully opaque FF alpha channel.
func ToARGB(hex string) (Color, error) {
	s := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	switch len(s) {
	case 6:
		s = "FF" + s
	case 8:
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789ABCDEF", r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, hex)
		}
	}
	return Color(s), nil
}

// MustARGB is like ToARGB but panics on invalid input. Use for literals only.
func MustARGB(hex string) Color {
	c, err := ToARGB(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// System is one upstream system entry.
type System struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// Registry is a read-only lookup from system code to System.
type Registry struct {
	systems     map[string]System
	defaultCode string
	fkColor     Color
}

var builtin = []System{
	{Code: "01", Name: "D365", Color: MustARGB("D9E1F2")},
	{Code: "02", Name: "AXAPTA", Color: MustARGB("C6E0B4")},
	{Code: "03", Name: "SalesForce", Color: MustARGB("FFF2CC")},
	{Code: "04", Name: "PDM", Color: MustARGB("F4CCCC")},
	{Code: "05", Name: "Mobile Installer", Color: MustARGB("D9D9D9")},
	{Code: "06", Name: "Order Management", Color: MustARGB("FFD966")},
	{Code: "07", Name: "DWH", Color: MustARGB("EAD1DC")},
	{Code: "08", Name: "Budget.xlsx", Color: MustARGB("D0E0E3")},
	{Code: "09", Name: "AccountItemMap.xlsx", Color: MustARGB("F4CCCC")},
}

// Default returns the built-in registry.
func Default() *Registry {
	r, err := New(builtin, DefaultCode, FKColor)
	if err != nil {
		panic(err)
	}
	return r
}

// New builds a registry. defaultCode must name one of the systems.
func New(systems []System, defaultCode string, fkColor Color) (*Registry, error) {
	r := &Registry{
		systems:     make(map[string]System, len(systems)),
		defaultCode: defaultCode,
	}
	for _, s := range systems {
		if len([]rune(s.Code)) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCode, s.Code)
		}
		c, err := ToARGB(string(s.Color))
		if err != nil {
			return nil, fmt.Errorf("system %s: %w", s.Code, err)
		}
		s.Color = c
		r.systems[s.Code] = s
	}
	if _, ok := r.systems[defaultCode]; !ok {
		return nil, fmt.Errorf("%w: default %q is not registered", ErrInvalidCode, defaultCode)
	}
	fk, err := ToARGB(string(fkColor))
	if err != nil {
		return nil, fmt.Errorf("fk color: %w", err)
	}
	r.fkColor = fk
	return r, nil
}

// With returns a copy of the registry with the given systems added or replaced.
func (r *Registry) With(systems ...System) (*Registry, error) {
	merged := r.Systems()
	idx := make(map[string]int, len(merged))
	for i, s := range merged {
		idx[s.Code] = i
	}
	for _, s := range systems {
		if i, ok := idx[s.Code]; ok {
			merged[i] = s
			continue
		}
		idx[s.Code] = len(merged)
		merged = append(merged, s)
	}
	return New(merged, r.defaultCode, r.fkColor)
}

// Lookup returns the system registered under code.
func (r *Registry) Lookup(code string) (System, bool) {
	s, ok := r.systems[code]
	return s, ok
}

// Default returns the fallback system used when provenance cannot be resolved.
func (r *Registry) Default() System {
	return r.systems[r.defaultCode]
}

// FKColor returns the fill used for foreign keys.
func (r *Registry) FKColor() Color {
	return r.fkColor
}

// Systems returns all systems ordered by code.
func (r *Registry) Systems() []System {
	out := make([]System, 0, len(r.systems))
	for _, s := range r.systems {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
