package op

import "fmt"

// ObjectKind is the kind byte stored in object records.
type ObjectKind byte

// ObjectKind values.
const (
	ObjNone ObjectKind = iota
	ObjItem
	ObjSex
	ObjSpecies
	ObjSkill
	ObjCharacter
	ObjDamageType
	ObjGeneric
)

func (k ObjectKind) String() string {
	switch k {
	case ObjItem:
		return "item"
	case ObjSex:
		return "sex"
	case ObjSpecies:
		return "species"
	case ObjSkill:
		return "skill"
	case ObjCharacter:
		return "character"
	case ObjDamageType:
		return "damage-type"
	case ObjGeneric:
		return "object"
	default:
		return "none"
	}
}

// Builtin property ids. Any property key >= HeaderSize is an object address
// (used for per-skill values on characters).
const (
	PropName        uint32 = 1
	PropPlural      uint32 = 2
	PropSubject     uint32 = 3
	PropObject      uint32 = 4
	PropPossessive  uint32 = 5
	PropAdjective   uint32 = 6
	PropReflexive   uint32 = 7
	PropSex         uint32 = 8
	PropSpecies     uint32 = 9
	PropFaction     uint32 = 10
	PropSlot        uint32 = 11
	PropOnUse       uint32 = 12
	PropResist      uint32 = 13
	PropVariable    uint32 = 14
	PropKO          uint32 = 15
	PropArticle     uint32 = 16
	PropDescription uint32 = 17
	PropValue       uint32 = 18
)

// Property describes how a property is written in declarations.
type Property struct {
	Name  string
	ID    uint32
	Flag  bool // Takes no value, stored as 1.
	Keyed bool // Takes a key before the value (skill <skill> <n>).
}

// SkillProperty is the keyed property assigning a skill value to a character.
const SkillProperty = "skill"

var PropertyTable = []Property{
	{Name: "name", ID: PropName},
	{Name: "plural", ID: PropPlural},
	{Name: "subject", ID: PropSubject},
	{Name: "object", ID: PropObject},
	{Name: "possessive", ID: PropPossessive},
	{Name: "adjective", ID: PropAdjective},
	{Name: "reflexive", ID: PropReflexive},
	{Name: "sex", ID: PropSex},
	{Name: "species", ID: PropSpecies},
	{Name: "faction", ID: PropFaction},
	{Name: "slot", ID: PropSlot},
	{Name: "on-use", ID: PropOnUse},
	{Name: "resist", ID: PropResist},
	{Name: "variable", ID: PropVariable, Flag: true},
	{Name: "ko", ID: PropKO, Flag: true},
	{Name: "article", ID: PropArticle},
	{Name: "description", ID: PropDescription},
	{Name: "value", ID: PropValue},
	{Name: SkillProperty, Keyed: true},
}

var propsByName = func() map[string]Property {
	out := make(map[string]Property, len(PropertyTable))
	for _, elem := range PropertyTable {
		out[elem.Name] = elem
	}
	return out
}()

// LookupProperty returns the property definition for the given name.
func LookupProperty(name string) (Property, bool) {
	p, ok := propsByName[name]
	return p, ok
}

// PropertyName returns the builtin name of a property id, empty if none.
func PropertyName(id uint32) string {
	for _, elem := range PropertyTable {
		if !elem.Keyed && elem.ID == id {
			return elem.Name
		}
	}
	return ""
}

// Object record layout: tag, kind byte, property count word,
// then count pairs of (key, value) words.
const objectHeaderSize = 1 + 1 + WordSize

// ObjectRecordSize returns the encoded size of an object with n properties.
func ObjectRecordSize(n int) int {
	return objectHeaderSize + n*2*WordSize
}

// StringRecordSize returns the encoded size of a string record.
func StringRecordSize(s string) int {
	return 1 + len(s) + 1
}

type ObjectProp struct {
	Key   uint32
	Value uint32
}

type Object struct {
	Addr  uint32
	Kind  ObjectKind
	Props []ObjectProp
}

// Get returns the value of the first property with the given key.
func (o *Object) Get(key uint32) (uint32, bool) {
	for _, elem := range o.Props {
		if elem.Key == key {
			return elem.Value, true
		}
	}
	return 0, false
}

// ReadObject decodes the object record starting at the cursor.
func ReadObject(c *Cursor) (*Object, error) {
	obj := &Object{Addr: c.Pos()}
	if err := c.Expect(IDObject); err != nil {
		return nil, err
	}
	kind, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	if kind == byte(ObjNone) || kind > byte(ObjGeneric) {
		return nil, fmt.Errorf("object 0x%04x has kind %d: %w", obj.Addr, kind, ErrMalformedRecord)
	}
	obj.Kind = ObjectKind(kind)
	n, err := c.ReadWord()
	if err != nil {
		return nil, err
	}
	for range n {
		k, err := c.ReadWord()
		if err != nil {
			return nil, fmt.Errorf("object 0x%04x key: %w", obj.Addr, err)
		}
		v, err := c.ReadWord()
		if err != nil {
			return nil, fmt.Errorf("object 0x%04x value: %w", obj.Addr, err)
		}
		obj.Props = append(obj.Props, ObjectProp{Key: k, Value: v})
	}
	return obj, nil
}

// ReadString decodes the string record starting at the cursor.
func ReadString(c *Cursor) (string, error) {
	if err := c.Expect(IDString); err != nil {
		return "", err
	}
	return c.ReadCString()
}
