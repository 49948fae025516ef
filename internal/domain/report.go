package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Report is a parsed Lighthouse Result (LHR) document. It is immutable
// after load; every query over it is read-only.
//
// JSON objects lose key order through Go maps, but opportunity ranking
// needs a stable encounter order for ties, so decoding records the key
// order of the audits and categories objects explicitly.
type Report struct {
	RequestedURL      string `json:"requestedUrl"`
	FinalURL          string `json:"finalUrl"`
	LighthouseVersion string `json:"lighthouseVersion"`
	FetchTime         string `json:"fetchTime"`

	Categories map[string]*Category `json:"categories"`
	Audits     map[string]*Audit    `json:"audits"`

	CategoryOrder []string `json:"-"`
	AuditOrder    []string `json:"-"`
}

// Category is a weighted group of audits with an aggregate score.
type Category struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Score     *float64   `json:"score"`
	AuditRefs []AuditRef `json:"auditRefs"`
}

type AuditRef struct {
	ID string `json:"id"`
}

// Score display modes as emitted by Lighthouse.
const (
	ModeBinary        = "binary"
	ModeNumeric       = "numeric"
	ModeInformative   = "informative"
	ModeNotApplicable = "notApplicable"
	ModeManual        = "manual"
)

// Audit is one scored check. Score == nil means not applicable or
// manual; such audits never count as failures.
type Audit struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Score            *float64 `json:"score"`
	ScoreDisplayMode string   `json:"scoreDisplayMode"`
	NumericValue     float64  `json:"numericValue"`
	NumericUnit      string   `json:"numericUnit"`
	DisplayValue     string   `json:"displayValue"`
	GuidanceLevel    int      `json:"guidanceLevel"`
	Details          *Details `json:"details"`
}

// Details is the tagged union carried by some audits. Only the fields
// this tool reads are modeled; everything else passes through Raw.
type Details struct {
	Type                string       `json:"type"`
	Items               []DetailItem `json:"items"`
	OverallSavingsMs    float64      `json:"overallSavingsMs"`
	OverallSavingsBytes float64      `json:"overallSavingsBytes"`
}

// DetailItem is one row of a details table. Lighthouse rows are
// heterogeneous, so values are accessed through tolerant helpers.
type DetailItem map[string]json.RawMessage

// Str returns the string at key, or "" when absent or not a string.
func (it DetailItem) Str(key string) string {
	raw, ok := it[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Num returns the number at key, or 0 when absent or not numeric.
func (it DetailItem) Num(key string) float64 {
	raw, ok := it[key]
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return f
}

// Audit resolves an audit by ID, tolerating absence.
func (r *Report) Audit(id string) (*Audit, bool) {
	a, ok := r.Audits[id]
	return a, ok && a != nil
}

// Category resolves a category by ID, tolerating absence.
func (r *Report) Category(id string) (*Category, bool) {
	c, ok := r.Categories[id]
	return c, ok && c != nil
}

// Failed reports whether the audit counts as failing against minScore.
// Null scores and manual/notApplicable modes never fail.
func (a *Audit) Failed(minScore float64) bool {
	if a.Score == nil {
		return false
	}
	if a.ScoreDisplayMode == ModeManual || a.ScoreDisplayMode == ModeNotApplicable {
		return false
	}
	return *a.Score < minScore
}

// HasDetails reports whether the audit carries details of the given type.
func (a *Audit) HasDetails(detailType string) bool {
	return a.Details != nil && a.Details.Type == detailType
}

// UnmarshalJSON decodes the LHR while recording the original key order
// of the audits and categories objects.
func (r *Report) UnmarshalJSON(data []byte) error {
	type plain Report
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Report(p)

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}

	var err error
	if raw, ok := top["audits"]; ok {
		if r.AuditOrder, err = objectKeyOrder(raw); err != nil {
			return fmt.Errorf("reading audits key order: %w", err)
		}
	}
	if raw, ok := top["categories"]; ok {
		if r.CategoryOrder, err = objectKeyOrder(raw); err != nil {
			return fmt.Errorf("reading categories key order: %w", err)
		}
	}
	return nil
}

// objectKeyOrder walks a JSON object's tokens and returns its top-level
// keys in document order.
func objectKeyOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil // not an object; order is moot
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in object", tok)
		}
		keys = append(keys, key)

		// Skip the value.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
