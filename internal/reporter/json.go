package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/docgrade/internal/codeobject"
	"github.com/pthm/docgrade/internal/evaluation"
)

// JSONReporter outputs results as JSON.
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a JSON reporter writing to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// JSONOutput is the top-level JSON document.
type JSONOutput struct {
	Objects []JSONObject       `json:"objects"`
	Summary evaluation.Summary `json:"summary"`
	Skipped []JSONSkipped      `json:"skipped,omitempty"`
}

// JSONObject is one evaluated object.
type JSONObject struct {
	Path       string                `json:"path"`
	Kind       string                `json:"kind"`
	Name       string                `json:"name"`
	Score      float64               `json:"score"`
	MinScore   float64               `json:"min_score"`
	MaxScore   float64               `json:"max_score"`
	Grade      evaluation.Grade      `json:"grade"`
	Priority   int                   `json:"priority"`
	Roles      []JSONRole            `json:"roles"`
	Locations  []codeobject.Location `json:"locations"`
	HasDoc     bool                  `json:"has_doc"`
	Nodoc      bool                  `json:"nodoc,omitempty"`
	Parameters []JSONParameter       `json:"parameters"`
	Children   []string              `json:"children"`
	Height     *int                  `json:"height,omitempty"`
}

// JSONRole is one applied role.
type JSONRole struct {
	Label    string   `json:"label"`
	Score    float64  `json:"score"`
	Priority int      `json:"priority"`
	MinScore *float64 `json:"min_score,omitempty"`
	MaxScore *float64 `json:"max_score,omitempty"`
}

// JSONParameter is the documentation state of one method parameter.
type JSONParameter struct {
	Name        string  `json:"name"`
	InSignature bool    `json:"in_signature"`
	Mentioned   bool    `json:"mentioned"`
	Typed       bool    `json:"typed"`
	Described   bool    `json:"described"`
	Score       float64 `json:"score"`
}

// JSONSkipped is a declaration excluded from the tree.
type JSONSkipped struct {
	Path     string              `json:"path"`
	Location codeobject.Location `json:"location"`
	Reason   string              `json:"reason"`
}

// Report writes r as indented JSON.
func (r *JSONReporter) Report(res Result) error {
	out := JSONOutput{
		Objects: make([]JSONObject, 0, len(res.Records)),
		Summary: res.Summary,
	}
	for _, rec := range res.Records {
		out.Objects = append(out.Objects, jsonObject(rec))
	}
	for _, s := range res.Skipped {
		out.Skipped = append(out.Skipped, JSONSkipped{Path: s.Path, Location: s.Location, Reason: s.Reason})
	}

	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func jsonObject(rec evaluation.Record) JSONObject {
	o := rec.Object
	obj := JSONObject{
		Path:      o.Path(),
		Kind:      o.Kind().String(),
		Name:      o.Name(),
		Score:     rec.Score,
		MinScore:  rec.MinScore,
		MaxScore:  rec.MaxScore,
		Grade:     rec.Grade,
		Priority:  rec.Priority,
		Roles:     make([]JSONRole, 0, len(rec.Roles)),
		Locations: o.Locations(),
		HasDoc:    o.HasDoc(),
		Nodoc:     o.IsNodoc(),
		Children:  rec.Children,
	}
	if obj.Locations == nil {
		obj.Locations = []codeobject.Location{}
	}
	if obj.Children == nil {
		obj.Children = []string{}
	}
	for _, role := range rec.Roles {
		obj.Roles = append(obj.Roles, JSONRole(role))
	}
	obj.Parameters = make([]JSONParameter, 0, len(rec.Parameters))
	for _, pe := range rec.Parameters {
		p, ok := pe.Object.(*codeobject.Parameter)
		if !ok {
			continue
		}
		obj.Parameters = append(obj.Parameters, JSONParameter{
			Name:        p.Name(),
			InSignature: p.InSignature(),
			Mentioned:   p.IsMentioned(),
			Typed:       p.IsTyped(),
			Described:   p.IsDescribed(),
			Score:       pe.Score,
		})
	}
	if o.Kind() == codeobject.KindNamespace {
		height := rec.Height
		obj.Height = &height
	}
	return obj
}
