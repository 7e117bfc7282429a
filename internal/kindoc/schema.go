package kindoc

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

var timeType = reflect.TypeOf(time.Time{})

// definitionSchemaRef resolves an arbitrary schema descriptor into the body
// of the named definition: document-model schemas pass through, raw JSON
// objects are decoded, and any other Go value is reflected. A named struct
// type is expanded inline rather than referenced, since the definition being
// registered is its home. Callers hold the write lock.
func (d *Document) definitionSchemaRef(schema any) (*openapi3.SchemaRef, error) {
	switch s := schema.(type) {
	case *openapi3.SchemaRef:
		return s, nil
	case *openapi3.Schema:
		return s.NewRef(), nil
	case json.RawMessage:
		return decodeSchema([]byte(s))
	case []byte:
		return decodeSchema(s)
	case map[string]any:
		data, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		return decodeSchema(data)
	case nil:
		return nil, fmt.Errorf("schema descriptor is nil")
	default:
		t := normalizeType(schema)
		if t != nil && t.Kind() == reflect.Struct && t != timeType {
			return d.structSchema(t, map[reflect.Type]bool{t: true}), nil
		}
		return d.reflectSchema(t, map[reflect.Type]bool{}), nil
	}
}

func decodeSchema(data []byte) (*openapi3.SchemaRef, error) {
	var value openapi3.Schema
	if err := value.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return value.NewRef(), nil
}

// reflectSchema maps a Go type onto a schema. Custom field-type mappings take
// precedence over the kind-based defaults; named struct types are registered
// as definitions and referenced, everything else is inlined. seen breaks
// reference cycles.
func (d *Document) reflectSchema(t reflect.Type, seen map[reflect.Type]bool) *openapi3.SchemaRef {
	if t == nil {
		return stringSchema("", "")
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if tf, ok := d.fieldTypes[t]; ok {
		return stringSchema(tf.Type, tf.Format)
	}
	if t == timeType {
		return stringSchema("string", "date-time")
	}

	switch t.Kind() {
	case reflect.String:
		return stringSchema("string", "")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return stringSchema("integer", "")
	case reflect.Float32, reflect.Float64:
		return stringSchema("number", "")
	case reflect.Bool:
		return stringSchema("boolean", "")
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return stringSchema("string", "binary")
		}
		return (&openapi3.Schema{
			Type:  &openapi3.Types{"array"},
			Items: d.reflectSchema(t.Elem(), seen),
		}).NewRef()
	case reflect.Map, reflect.Interface:
		return stringSchema("object", "")
	case reflect.Struct:
		name := t.Name()
		if name == "" {
			return d.structSchema(t, seen)
		}
		if !seen[t] && !d.definitionExists(name) {
			seen[t] = true
			// Placeholder first so self-referencing types terminate.
			d.storeDefinition(name, stringSchema("object", ""))
			d.storeDefinition(name, d.structSchema(t, seen))
		}
		return openapi3.NewSchemaRef(d.refPrefix+name, nil)
	default:
		return stringSchema("string", "")
	}
}

func (d *Document) structSchema(t reflect.Type, seen map[reflect.Type]bool) *openapi3.SchemaRef {
	schema := &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: openapi3.Schemas{},
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded := d.structSchema(field.Type, seen)
			for name, prop := range embedded.Value.Properties {
				schema.Properties[name] = prop
			}
			continue
		}

		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
		}
		schema.Properties[name] = d.reflectSchema(field.Type, seen)
	}
	return schema.NewRef()
}

func (d *Document) definitionExists(name string) bool {
	if d.v2 != nil {
		_, ok := d.v2.Definitions[name]
		return ok
	}
	_, ok := d.v3.Components.Schemas[name]
	return ok
}

func stringSchema(typ, format string) *openapi3.SchemaRef {
	schema := &openapi3.Schema{Format: format}
	if typ != "" {
		schema.Type = &openapi3.Types{typ}
	}
	return schema.NewRef()
}
