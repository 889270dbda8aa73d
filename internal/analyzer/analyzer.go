// Package analyzer implements the cbuf semantic analyzer (spec §4.3):
// namespace scoping, constant/enum/struct validation, enum-to-integer
// field rewriting, and fully qualified name resolution.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/verdant-robotics/cbuf/internal/grammar"
	"github.com/verdant-robotics/cbuf/internal/resolve"
	"github.com/verdant-robotics/cbuf/pkg/schema"
)

type rawEnum struct {
	namespaces []string
	def        *grammar.EnumDef
}

type rawStruct struct {
	namespaces []string
	def        *grammar.StructDef
}

type rawConst struct {
	namespaces []string
	def        *grammar.ConstDef
}

// Analyze runs semantic analysis over a parsed file and returns the
// compiled entity list. Entities come back with HashValue == 0; hashing is
// a distinct stage (package hash) because a struct's hash depends
// recursively on the hashes of the structs it embeds.
func Analyze(file *grammar.File) ([]*schema.Entity, error) {
	var rawEnums []rawEnum
	var rawStructs []rawStruct
	var rawConsts []rawConst

	var walk func(elements []*grammar.Element, namespaces []string, depth int) error
	walk = func(elements []*grammar.Element, namespaces []string, depth int) error {
		for _, el := range elements {
			switch {
			case el.Namespace != nil:
				if depth >= 1 {
					return &NestedNamespaceError{Name: el.Namespace.Name, Line: el.Namespace.Pos.Line}
				}
				next := append(append([]string{}, namespaces...), el.Namespace.Name)
				if err := walk(el.Namespace.Body, next, depth+1); err != nil {
					return err
				}
			case el.Const != nil:
				rawConsts = append(rawConsts, rawConst{namespaces: namespaces, def: el.Const})
			case el.Enum != nil:
				rawEnums = append(rawEnums, rawEnum{namespaces: namespaces, def: el.Enum})
			case el.Struct != nil:
				rawStructs = append(rawStructs, rawStruct{namespaces: namespaces, def: el.Struct})
			}
		}
		return nil
	}
	if err := walk(file.Elements, nil, 0); err != nil {
		return nil, err
	}

	defined := make(map[string]bool)
	entitiesByName := make(map[string]*schema.Entity)
	var entities []*schema.Entity

	registerEntity := func(e *schema.Entity) error {
		if defined[e.QualifiedName] {
			return &DuplicateEntityError{QualifiedName: e.QualifiedName}
		}
		defined[e.QualifiedName] = true
		entitiesByName[e.QualifiedName] = e
		entities = append(entities, e)
		return nil
	}

	// Pass 1a: constants. Type-checked immediately; never part of the
	// returned schema list (spec §4.3 step 2: compile-time only).
	for _, rc := range rawConsts {
		qn := qualify(rc.namespaces, rc.def.Name)
		if defined[qn] {
			return nil, &DuplicateEntityError{QualifiedName: qn}
		}
		tag, _, ok := schema.CanonicalPrimitive(rc.def.Type)
		if !ok {
			return nil, fmt.Errorf("unknown primitive type %q", rc.def.Type)
		}
		if _, err := evalScalar(rc.def.Value, tag); err != nil {
			return nil, &InvalidDefaultValueError{Field: rc.def.Name, Type: tag, Msg: err.Error()}
		}
		defined[qn] = true
	}

	// Pass 1b: enums. Fully self-contained, so they can be resolved
	// entirely in this pass (spec §4.3 step 3).
	for _, re := range rawEnums {
		entity := &schema.Entity{
			Name:          re.def.Name,
			QualifiedName: qualify(re.namespaces, re.def.Name),
			Namespaces:    re.namespaces,
			IsEnum:        true,
			IsEnumClass:   re.def.IsClass,
		}
		next := int64(0)
		for _, m := range re.def.Members {
			val := next
			if m.Value != nil {
				val = int64(*m.Value)
			}
			entity.Definitions = append(entity.Definitions, &schema.Field{
				Name:       m.Name,
				Type:       schema.Uint32,
				IsConstant: true,
				Value:      val,
			})
			next = val + 1
		}
		if err := registerEntity(entity); err != nil {
			return nil, err
		}
	}

	// Pass 1c: register struct names up front so that mutually and
	// forward-referencing struct fields resolve in pass 2.
	structEntities := make([]*schema.Entity, 0, len(rawStructs))
	for _, rs := range rawStructs {
		entity := &schema.Entity{
			Name:          rs.def.Name,
			QualifiedName: qualify(rs.namespaces, rs.def.Name),
			Namespaces:    rs.namespaces,
			IsNakedStruct: rs.def.Naked,
		}
		if err := registerEntity(entity); err != nil {
			return nil, err
		}
		structEntities = append(structEntities, entity)
	}

	// Pass 2: rewrite struct fields now that every name is registered.
	for i, rs := range rawStructs {
		entity := structEntities[i]
		for _, fd := range rs.def.Fields {
			field, err := resolveField(fd, rs.namespaces, defined, entitiesByName)
			if err != nil {
				return nil, err
			}
			entity.Definitions = append(entity.Definitions, field)
		}
	}

	if len(structEntities) == 0 {
		return nil, &NoStructsError{}
	}

	return entities, nil
}

func qualify(namespaces []string, name string) string {
	parts := append(append([]string{}, namespaces...), name)
	return strings.Join(parts, "::")
}

func resolveField(fd *grammar.FieldDef, namespaces []string, defined map[string]bool, entitiesByName map[string]*schema.Entity) (*schema.Field, error) {
	field := &schema.Field{Name: fd.Name}

	var enumEntity *schema.Entity

	switch {
	case fd.Type.Primitive != "":
		tag, upperBound, ok := schema.CanonicalPrimitive(fd.Type.Primitive)
		if !ok {
			return nil, fmt.Errorf("unknown primitive type %q", fd.Type.Primitive)
		}
		field.Type = tag
		field.UpperBound = upperBound
	case fd.Type.Complex != nil:
		typeName := fd.Type.Complex.String()
		qn, err := resolve.Lookup(defined, namespaces, typeName)
		if err != nil {
			return nil, err
		}
		target := entitiesByName[qn]
		if target != nil && target.IsEnum {
			field.Type = schema.Uint32
			enumEntity = target
		} else {
			field.Type = qn
			field.IsComplex = true
		}
	default:
		return nil, fmt.Errorf("field %s has no type", fd.Name)
	}

	if fd.Array != nil {
		field.IsArray = true
		if fd.Array.Length != nil {
			n, err := grammar.EvalArith(fd.Array.Length)
			if err != nil {
				return nil, err
			}
			if fd.Array.Compact {
				field.ArrayUpperBound = n
			} else {
				field.ArrayLength = n
			}
		}
	}

	if fd.Default != nil {
		if field.IsComplex {
			return nil, &ComplexDefaultForbiddenError{Field: fd.Name, Type: field.Type}
		}
		def, err := resolveDefault(fd.Default, field, enumEntity)
		if err != nil {
			return nil, err
		}
		field.DefaultValue = def
		field.HasDefault = true
	}

	return field, nil
}

func resolveDefault(rhs *grammar.RHS, field *schema.Field, enumEntity *schema.Entity) (any, error) {
	if field.IsArray {
		if rhs.Array == nil {
			return nil, &InvalidDefaultValueError{Field: field.Name, Type: field.Type, Msg: "array field requires a brace-delimited default"}
		}
		elems := make([]any, 0, len(rhs.Array.Elements))
		for _, e := range rhs.Array.Elements {
			v, err := resolveScalarDefault(e, field, enumEntity)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return elems, nil
	}
	return resolveScalarDefault(rhs, field, enumEntity)
}

func resolveScalarDefault(rhs *grammar.RHS, field *schema.Field, enumEntity *schema.Entity) (any, error) {
	if enumEntity != nil {
		if rhs.Ident == nil {
			return nil, &InvalidDefaultValueError{Field: field.Name, Type: enumEntity.QualifiedName, Msg: "enum default must name a member"}
		}
		for _, m := range enumEntity.Definitions {
			if m.Name == *rhs.Ident {
				return m.Value, nil
			}
		}
		return nil, &UnknownEnumValueError{EnumName: enumEntity.QualifiedName, Member: *rhs.Ident}
	}
	v, err := evalScalar(rhs, field.Type)
	if err != nil {
		return nil, &InvalidDefaultValueError{Field: field.Name, Type: field.Type, Msg: err.Error()}
	}
	return v, nil
}

func evalScalar(rhs *grammar.RHS, tag string) (any, error) {
	switch tag {
	case schema.Bool:
		if rhs.Ident == nil || (*rhs.Ident != "true" && *rhs.Ident != "false") {
			return nil, fmt.Errorf("expected true or false")
		}
		return *rhs.Ident == "true", nil
	case schema.String:
		if rhs.String == nil {
			return nil, fmt.Errorf("expected a string literal")
		}
		return strings.Trim(*rhs.String, `"`), nil
	default:
		if rhs.Number == nil {
			return nil, fmt.Errorf("expected a number")
		}
		v := *rhs.Number
		if rhs.Negative {
			v = -v
		}
		return numericLiteral(tag, v)
	}
}

func numericLiteral(tag string, v float64) (any, error) {
	switch tag {
	case schema.Int8:
		return int8(v), nil
	case schema.Uint8:
		return uint8(v), nil
	case schema.Int16:
		return int16(v), nil
	case schema.Uint16:
		return uint16(v), nil
	case schema.Int32:
		return int32(v), nil
	case schema.Uint32:
		return uint32(v), nil
	case schema.Int64:
		return int64(v), nil
	case schema.Uint64:
		return uint64(v), nil
	case schema.Float32:
		return float32(v), nil
	case schema.Float64:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported numeric type %q", tag)
	}
}
