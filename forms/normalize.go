// Package forms normalizes the editable product and service fields that
// arrive from the admin forms and from historical database rows. Structured
// fields (description, technicalSpecs, the service rich-text blocks) exist
// in three persisted shapes: a structured document, a JSON-encoded string,
// or a legacy bare string. Everything is normalized at this boundary; the
// rest of the codebase only ever sees the canonical types.
package forms

import (
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Description is the canonical editable shape of a product description.
// Array fields always hold at least one slot so edit forms have a row to
// bind to.
type Description struct {
	Overview     string   `json:"overview" bson:"overview"`
	Features     []string `json:"features" bson:"features"`
	Applications []string `json:"applications" bson:"applications"`
	Materials    []string `json:"materials" bson:"materials"`
}

// TechnicalSpecs is the canonical editable shape of a product spec sheet.
type TechnicalSpecs struct {
	Dimensions    string `json:"dimensions" bson:"dimensions"`
	Weight        string `json:"weight" bson:"weight"`
	Material      string `json:"material" bson:"material"`
	SurfaceFinish string `json:"surfaceFinish" bson:"surfaceFinish"`
	LoadCapacity  string `json:"loadCapacity" bson:"loadCapacity"`
	WeldingType   string `json:"weldingType" bson:"weldingType"`
	Customizable  bool   `json:"customizable" bson:"customizable"`
}

func DefaultDescription() Description {
	return Description{
		Features:     []string{""},
		Applications: []string{""},
		Materials:    []string{""},
	}
}

// ParseDescription accepts whatever shape a persisted description arrives
// in and returns the canonical form. Never fails: an unparseable string is
// taken as the overview text.
func ParseDescription(raw any) Description {
	switch v := raw.(type) {
	case nil:
		return DefaultDescription()
	case Description:
		return descriptionFromMap(map[string]any{
			"overview":     v.Overview,
			"features":     v.Features,
			"applications": v.Applications,
			"materials":    v.Materials,
		})
	case *Description:
		if v == nil {
			return DefaultDescription()
		}
		return ParseDescription(*v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return DefaultDescription()
		}
		if m, ok := decodeJSONObject(s); ok {
			return descriptionFromMap(m)
		}
		d := DefaultDescription()
		d.Overview = v
		return d
	default:
		if m, ok := asMap(raw); ok {
			return descriptionFromMap(m)
		}
		return DefaultDescription()
	}
}

func descriptionFromMap(m map[string]any) Description {
	return Description{
		Overview:     asString(m["overview"]),
		Features:     editableRows(m["features"]),
		Applications: editableRows(m["applications"]),
		Materials:    editableRows(m["materials"]),
	}
}

// ParseTechnicalSpecs mirrors ParseDescription; a legacy bare string is
// treated as the dimensions field.
func ParseTechnicalSpecs(raw any) TechnicalSpecs {
	switch v := raw.(type) {
	case nil:
		return TechnicalSpecs{}
	case TechnicalSpecs:
		return v
	case *TechnicalSpecs:
		if v == nil {
			return TechnicalSpecs{}
		}
		return *v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return TechnicalSpecs{}
		}
		if m, ok := decodeJSONObject(s); ok {
			return specsFromMap(m)
		}
		return TechnicalSpecs{Dimensions: v}
	default:
		if m, ok := asMap(raw); ok {
			return specsFromMap(m)
		}
		return TechnicalSpecs{}
	}
}

func specsFromMap(m map[string]any) TechnicalSpecs {
	return TechnicalSpecs{
		Dimensions:    asString(m["dimensions"]),
		Weight:        asString(m["weight"]),
		Material:      asString(m["material"]),
		SurfaceFinish: asString(m["surfaceFinish"]),
		LoadCapacity:  asString(m["loadCapacity"]),
		WeldingType:   asString(m["weldingType"]),
		Customizable:  asBool(m["customizable"]),
	}
}

// ParseImageList accepts an image list persisted as a string array, a
// JSON-encoded array, or a single URL string. Never returns nil.
func ParseImageList(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return []string{}
		}
		var arr []any
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			return ParseImageList(arr)
		}
		return []string{v}
	default:
		if items, ok := asSlice(raw); ok {
			out := make([]string, 0, len(items))
			for _, it := range items {
				if s := asString(it); strings.TrimSpace(s) != "" {
					out = append(out, s)
				}
			}
			return out
		}
		return []string{}
	}
}

// Document re-encodes the description for persistence, dropping blank
// array rows and empty fields. Returns nil when everything is empty so the
// caller can omit the key entirely.
func (d Description) Document() bson.M {
	doc := bson.M{}
	if s := strings.TrimSpace(d.Overview); s != "" {
		doc["overview"] = s
	}
	if rows := filledRows(d.Features); len(rows) > 0 {
		doc["features"] = rows
	}
	if rows := filledRows(d.Applications); len(rows) > 0 {
		doc["applications"] = rows
	}
	if rows := filledRows(d.Materials); len(rows) > 0 {
		doc["materials"] = rows
	}
	if len(doc) == 0 {
		return nil
	}
	return doc
}

// Document re-encodes the spec sheet, dropping empty keys. An all-empty
// sheet returns nil and must be omitted, never stored as {}.
func (t TechnicalSpecs) Document() bson.M {
	doc := bson.M{}
	set := func(key, val string) {
		if s := strings.TrimSpace(val); s != "" {
			doc[key] = s
		}
	}
	set("dimensions", t.Dimensions)
	set("weight", t.Weight)
	set("material", t.Material)
	set("surfaceFinish", t.SurfaceFinish)
	set("loadCapacity", t.LoadCapacity)
	set("weldingType", t.WeldingType)
	if t.Customizable {
		doc["customizable"] = true
	}
	if len(doc) == 0 {
		return nil
	}
	return doc
}

// editableRows coerces a raw sub-field into at least one editable row.
// Non-array values (schema drift) collapse to a single empty slot.
func editableRows(raw any) []string {
	items, ok := asSlice(raw)
	if !ok || len(items) == 0 {
		return []string{""}
	}
	rows := make([]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, asString(it))
	}
	return rows
}

func filledRows(rows []string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r) != "" {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func decodeJSONObject(s string) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, false
	}
	return m, true
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	default:
		return false
	}
}

// asMap flattens the object shapes the mongo driver and encoding/json hand
// back (bson.D, bson.M, plain maps) into one map type.
func asMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case bson.M:
		return map[string]any(v), true
	case bson.D:
		m := make(map[string]any, len(v))
		for _, e := range v {
			m[e.Key] = e.Value
		}
		return m, true
	default:
		return nil, false
	}
}

func asSlice(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case bson.A:
		return []any(v), true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}
