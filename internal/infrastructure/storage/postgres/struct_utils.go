package postgres

import (
	"reflect"
	"sync"
)

// taggedField is one struct field carrying a "db" tag.
type taggedField struct {
	index int
	col   string
}

// fieldPlan is the cached reflection walk of one entity type: its tagged
// fields, its embedded struct indices and the flattened column list.
type fieldPlan struct {
	fields   []taggedField
	embedded []int
	cols     []string
}

var planCache sync.Map // reflect.Type -> *fieldPlan

func planFor(t reflect.Type) *fieldPlan {
	if cached, ok := planCache.Load(t); ok {
		return cached.(*fieldPlan)
	}

	p := &fieldPlan{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			ft := f.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				p.embedded = append(p.embedded, i)
				p.cols = append(p.cols, planFor(ft).cols...)
			}
			continue
		}
		col := f.Tag.Get("db")
		if col == "" || col == "-" {
			continue
		}
		p.fields = append(p.fields, taggedField{index: i, col: col})
		p.cols = append(p.cols, col)
	}

	planCache.Store(t, p)
	return p
}

// ExtractDBColumns lists the column names an entity type declares through
// its "db" tags, walking embedded structs such as entity.BaseEntity.
// Repositories call it once at construction to build their select lists:
//
//	postgres.ExtractDBColumns[city.City]() // id, deletion_mark, ..., name, province
func ExtractDBColumns[T any]() []string {
	t := reflect.TypeOf(*new(T))
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return append([]string(nil), planFor(t).cols...)
}

// StructToMap flattens an entity into a column->value map following the
// same "db" tags, the shape squirrel's SetMap expects. Runs on every
// insert and update, so the reflection walk is cached per type.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	p := planFor(rv.Type())
	out := make(map[string]any, len(p.cols))
	for _, idx := range p.embedded {
		for col, val := range StructToMap(rv.Field(idx).Interface()) {
			out[col] = val
		}
	}
	for _, f := range p.fields {
		out[f.col] = rv.Field(f.index).Interface()
	}
	return out
}
