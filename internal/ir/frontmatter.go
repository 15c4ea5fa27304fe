package ir

// Frontmatter is an ordered key→value map rendered as literal YAML ahead of
// the document body.
type Frontmatter struct {
	Fields []FrontmatterField
}

type FrontmatterField struct {
	Key   string
	Value FrontmatterValue
}

// FrontmatterValue is a YAML scalar, a list of scalars, or a list of
// one-level objects.
type FrontmatterValue interface {
	aFrontmatterValue()
}

// Scalar is a single YAML scalar value.
type Scalar string

func (Scalar) aFrontmatterValue() {}

// ScalarList renders as "- item" lines.
type ScalarList []string

func (ScalarList) aFrontmatterValue() {}

// ObjectList renders each object's first entry with a "- " prefix and the
// remaining entries indented two spaces beneath it.
type ObjectList []Object

func (ObjectList) aFrontmatterValue() {}

// Object is an ordered list of scalar entries.
type Object []Entry

type Entry struct {
	Key   string
	Value string
}

// Set appends or replaces a field, preserving insertion order.
func (f *Frontmatter) Set(key string, value FrontmatterValue) {
	for i, fld := range f.Fields {
		if fld.Key == key {
			f.Fields[i].Value = value
			return
		}
	}
	f.Fields = append(f.Fields, FrontmatterField{Key: key, Value: value})
}
