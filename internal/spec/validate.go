package spec

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

var schema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("campaign-spec.schema.json", bytes.NewReader(schemaJSON)); err != nil {
		panic(err)
	}
	return c.MustCompile("campaign-spec.schema.json")
}

// SchemaError reports a structural schema violation at a field path.
type SchemaError struct {
	Path   string
	Detail string
}

func (e *SchemaError) Error() string {
	if e.Path == "" || e.Path == "/" {
		return fmt.Sprintf("spec does not match schema: %s", e.Detail)
	}
	return fmt.Sprintf("spec does not match schema at %s: %s", e.Path, e.Detail)
}

// DuplicateRefError reports an ad-group ref declared more than once.
type DuplicateRefError struct {
	Ref string
}

func (e *DuplicateRefError) Error() string {
	return fmt.Sprintf("duplicate ad group ref %q", e.Ref)
}

// DanglingReferenceError reports an ad pointing at an undeclared ad group.
type DanglingReferenceError struct {
	Ad  string
	Ref string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("ad %q references undefined ad group ref %q", e.Ad, e.Ref)
}

// MissingBudgetError reports a document with no complete budget source:
// neither a campaign budget nor a budget on every ad group.
type MissingBudgetError struct {
	UnbudgetedRefs []string
}

func (e *MissingBudgetError) Error() string {
	if len(e.UnbudgetedRefs) > 0 {
		return fmt.Sprintf("no campaign budget and ad groups without a budget: %v", e.UnbudgetedRefs)
	}
	return "spec carries no budget: set campaign.budget or a budget on every ad group"
}

// Validate checks a raw document against the schema, then enforces the
// referential and budget invariants a schema cannot express. It is pure:
// no file or network I/O. The first failing check wins; a document is
// never partially validated.
func Validate(raw []byte, doc *CampaignSpec) error {
	if err := validateSchema(raw); err != nil {
		return err
	}
	if err := checkRefUniqueness(doc.AdGroups); err != nil {
		return err
	}
	if err := checkAdReferences(doc.AdGroups, doc.Ads); err != nil {
		return err
	}
	return checkBudgetCoverage(doc)
}

func validateSchema(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return &SchemaError{Detail: err.Error()}
	}
	err := schema.Validate(v)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		leaf := deepestCause(ve)
		return &SchemaError{Path: leaf.InstanceLocation, Detail: leaf.Message}
	}
	return &SchemaError{Detail: err.Error()}
}

// deepestCause walks the validation-error tree to the most specific
// violation so the reported path names the offending field, not the root.
func deepestCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

func checkRefUniqueness(groups []AdGroupSpec) error {
	seen := make(map[string]bool, len(groups))
	for _, g := range groups {
		if seen[g.Ref] {
			return &DuplicateRefError{Ref: g.Ref}
		}
		seen[g.Ref] = true
	}
	return nil
}

func checkAdReferences(groups []AdGroupSpec, ads []AdSpec) error {
	refs := make(map[string]bool, len(groups))
	for _, g := range groups {
		refs[g.Ref] = true
	}
	for _, ad := range ads {
		if !refs[ad.AdGroupRef] {
			return &DanglingReferenceError{Ad: ad.Name, Ref: ad.AdGroupRef}
		}
	}
	return nil
}

// checkBudgetCoverage enforces the all-or-nothing budget rule: either the
// campaign carries a budget, or every single ad group does. Partial
// ad-group coverage is invalid even though the remote API would accept it,
// because the unbudgeted ad groups would silently never deliver.
func checkBudgetCoverage(doc *CampaignSpec) error {
	if doc.Campaign.Budget != nil {
		return nil
	}
	var unbudgeted []string
	for _, g := range doc.AdGroups {
		if g.Budget == nil {
			unbudgeted = append(unbudgeted, g.Ref)
		}
	}
	if len(unbudgeted) == 0 && len(doc.AdGroups) > 0 {
		return nil
	}
	return &MissingBudgetError{UnbudgetedRefs: unbudgeted}
}
