package typedesc

// Primitive is a schema kind plus optional well-known format, as resolved
// from the primitive/format table.
type Primitive struct {
	Type   string
	Format string
}

// primitives is the fixed primitive/format table. Identifiers absent from
// the table are not primitives and fall through to object handling.
var primitives = map[string]Primitive{
	"String": {Type: "string"},
	"str":    {Type: "string"},
	"char":   {Type: "string"},

	"bool": {Type: "boolean"},

	"i8":  {Type: "integer", Format: "int32"},
	"i16": {Type: "integer", Format: "int32"},
	"i32": {Type: "integer", Format: "int32"},
	"u8":  {Type: "integer", Format: "int32"},
	"u16": {Type: "integer", Format: "int32"},
	"u32": {Type: "integer", Format: "int32"},
	"i64": {Type: "integer", Format: "int64"},
	"u64": {Type: "integer", Format: "int64"},

	// no standard format exists for 128-bit or platform-width integers
	"i128":  {Type: "integer"},
	"u128":  {Type: "integer"},
	"isize": {Type: "integer"},
	"usize": {Type: "integer"},

	"f32": {Type: "number", Format: "float"},
	"f64": {Type: "number", Format: "double"},
}

// timePrimitives extends the table with date/time identifiers when the
// time-types capability is enabled.
var timePrimitives = map[string]Primitive{
	"NaiveDate":         {Type: "string", Format: "date"},
	"NaiveTime":         {Type: "string", Format: "time"},
	"DateTime":          {Type: "string", Format: "date-time"},
	"NaiveDateTime":     {Type: "string", Format: "date-time"},
	"OffsetDateTime":    {Type: "string", Format: "date-time"},
	"PrimitiveDateTime": {Type: "string", Format: "date-time"},
	"Timestamp":         {Type: "string", Format: "date-time"},
}

// timePrimitive reports whether name belongs to the date/time extension
// of the table. Chrono-style DateTime<Tz> carries a timezone argument with
// no schema effect, so these identifiers tolerate generic arguments.
func timePrimitive(name string) bool {
	_, ok := timePrimitives[name]
	return ok
}

// LookupPrimitive resolves an identifier against the primitive/format
// table. Pure and total: unknown identifiers return ok=false.
func LookupPrimitive(name string, timeTypes bool) (Primitive, bool) {
	if p, ok := primitives[name]; ok {
		return p, true
	}
	if timeTypes {
		if p, ok := timePrimitives[name]; ok {
			return p, true
		}
	}
	return Primitive{}, false
}
