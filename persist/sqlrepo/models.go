// Package sqlrepo implements the §6 "Relational form (informative)" schema
// as a real encoder: symbols/locations/definitions/references plus a
// definition_references join table modeling nested-call containment,
// persisted through gorm against a pure-Go SQLite driver.
package sqlrepo

// Symbol is one row of the symbols table: a Function or Method identity.
// ClassName is nil for a Function and for a Method call-site symbol whose
// receiver type is unresolved (§4.B); the composite unique index matches
// the reference ORM's UniqueConstraint("name", "class_name").
type Symbol struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"type:varchar(255);not null;uniqueIndex:uq_symbol_name_class"`
	ClassName *string `gorm:"type:varchar(255);uniqueIndex:uq_symbol_name_class"`
	Kind      string  `gorm:"type:varchar(16);not null"`

	Definitions []Definition `gorm:"foreignKey:SymbolID"`
	References  []Reference  `gorm:"foreignKey:SymbolID"`
}

func (Symbol) TableName() string { return "symbols" }

// CodeLocation is one row of the locations table.
type CodeLocation struct {
	ID         uint   `gorm:"primaryKey"`
	FilePath   string `gorm:"type:text;not null"`
	StartLine  int    `gorm:"not null"`
	StartCol   int    `gorm:"not null"`
	EndLine    int    `gorm:"not null"`
	EndCol     int    `gorm:"not null"`
	StartByte  int    `gorm:"not null"`
	EndByte    int    `gorm:"not null"`
}

func (CodeLocation) TableName() string { return "locations" }

// Definition is one row of the definitions table: a symbol's occurrence at
// a location, together with the references nested inside its body.
type Definition struct {
	ID         uint `gorm:"primaryKey"`
	SymbolID   uint `gorm:"not null;index"`
	Symbol     Symbol
	LocationID uint `gorm:"not null;index"`
	Location   CodeLocation

	InternalReferences []Reference `gorm:"many2many:definition_references;"`
}

func (Definition) TableName() string { return "definitions" }

// Reference is one row of the references table: a call site at a location,
// naming the symbol it calls. Callers is the inverse side of the
// definition_references many-to-many join.
type Reference struct {
	ID         uint `gorm:"primaryKey"`
	SymbolID   uint `gorm:"not null;index"`
	Symbol     Symbol
	LocationID uint `gorm:"not null;index"`
	Location   CodeLocation

	Callers []Definition `gorm:"many2many:definition_references;"`
}

func (Reference) TableName() string { return "references" }

// IndexMetadata is one row of the metadata table: the store tag the
// persisted snapshot was saved under.
type IndexMetadata struct {
	IndexType string `gorm:"primaryKey;type:varchar(64)"`
}

func (IndexMetadata) TableName() string { return "metadata" }

// AllModels lists every model sqlrepo owns, for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&Symbol{},
		&CodeLocation{},
		&Definition{},
		&Reference{},
		&IndexMetadata{},
	}
}
