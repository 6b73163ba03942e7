package sqlrepo

import (
	"fmt"

	"gorm.io/gorm"

	glebarez "github.com/glebarez/sqlite"

	"github.com/viant/coderef/model"
)

// Open opens (creating if necessary) a SQLite database at path and runs
// migrations. An empty path opens an in-memory database, matching the
// reference SqlitePersistStrategy.get_engine's path=None case.
func Open(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(glebarez.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("sqlrepo: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return nil, fmt.Errorf("sqlrepo: migrate: %w", err)
	}
	return db, nil
}

func locationCriteria(l model.Location) CodeLocation {
	return CodeLocation{
		FilePath:  l.FilePath,
		StartLine: l.StartLine,
		StartCol:  l.StartCol,
		EndLine:   l.EndLine,
		EndCol:    l.EndCol,
		StartByte: l.StartByte,
		EndByte:   l.EndByte,
	}
}

func symbolCriteria(s model.Symbol) Symbol {
	row := Symbol{Name: s.Name, Kind: string(s.Kind)}
	if s.HasClass {
		class := s.ClassName
		row.ClassName = &class
	}
	return row
}

// getOrCreateLocation mirrors the reference get_or_create helper: find a
// row matching criteria's natural key, or insert one.
func getOrCreateLocation(tx *gorm.DB, criteria CodeLocation) (*CodeLocation, error) {
	var row CodeLocation
	err := tx.Where(map[string]interface{}{
		"file_path": criteria.FilePath, "start_line": criteria.StartLine, "start_col": criteria.StartCol,
		"end_line": criteria.EndLine, "end_col": criteria.EndCol, "start_byte": criteria.StartByte, "end_byte": criteria.EndByte,
	}).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	row = criteria
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func getOrCreateSymbol(tx *gorm.DB, criteria Symbol) (*Symbol, error) {
	q := tx.Where("name = ? AND kind = ?", criteria.Name, criteria.Kind)
	if criteria.ClassName == nil {
		q = q.Where("class_name IS NULL")
	} else {
		q = q.Where("class_name = ?", *criteria.ClassName)
	}
	var row Symbol
	err := q.First(&row).Error
	if err == nil {
		return &row, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	row = criteria
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func getOrCreateDefinition(tx *gorm.DB, symbolID, locationID uint) (*Definition, error) {
	var row Definition
	err := tx.Where(Definition{SymbolID: symbolID, LocationID: locationID}).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	row = Definition{SymbolID: symbolID, LocationID: locationID}
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func getOrCreateReference(tx *gorm.DB, symbolID, locationID uint) (*Reference, error) {
	var row Reference
	err := tx.Where(Reference{SymbolID: symbolID, LocationID: locationID}).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	row = Reference{SymbolID: symbolID, LocationID: locationID}
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Save persists data's entries into db, replacing any existing rows. A
// direct port of SqlitePersistStrategy.save/_save/_handle_entry.
func Save(db *gorm.DB, data model.IndexData) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"definition_references", "definitions", "references", "symbols", "locations", "metadata"} {
			if err := tx.Exec("DELETE FROM `" + table + "`").Error; err != nil {
				return fmt.Errorf("sqlrepo: clear %s: %w", table, err)
			}
		}

		if err := tx.Create(&IndexMetadata{IndexType: data.Type}).Error; err != nil {
			return fmt.Errorf("sqlrepo: save metadata: %w", err)
		}

		for _, entry := range data.Data {
			if err := saveEntry(tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
}

func saveEntry(tx *gorm.DB, entry model.IndexEntry) error {
	symbolRow, err := getOrCreateSymbol(tx, symbolCriteria(entry.Symbol))
	if err != nil {
		return fmt.Errorf("sqlrepo: save symbol %s: %w", entry.Symbol, err)
	}

	for _, def := range entry.Info.Definitions {
		if err := saveDefinition(tx, symbolRow.ID, def); err != nil {
			return err
		}
	}
	for _, ref := range entry.Info.References {
		locRow, err := getOrCreateLocation(tx, locationCriteria(ref.Location))
		if err != nil {
			return fmt.Errorf("sqlrepo: save reference location: %w", err)
		}
		if _, err := getOrCreateReference(tx, symbolRow.ID, locRow.ID); err != nil {
			return fmt.Errorf("sqlrepo: save reference: %w", err)
		}
	}
	return nil
}

func saveDefinition(tx *gorm.DB, symbolID uint, def model.Definition) error {
	locRow, err := getOrCreateLocation(tx, locationCriteria(def.Location))
	if err != nil {
		return fmt.Errorf("sqlrepo: save definition location: %w", err)
	}
	defRow, err := getOrCreateDefinition(tx, symbolID, locRow.ID)
	if err != nil {
		return fmt.Errorf("sqlrepo: save definition: %w", err)
	}

	for _, call := range def.Calls {
		calleeSymbolRow, err := getOrCreateSymbol(tx, symbolCriteria(call.Symbol))
		if err != nil {
			return fmt.Errorf("sqlrepo: save call target symbol: %w", err)
		}
		calleeLocRow, err := getOrCreateLocation(tx, locationCriteria(call.Reference.Location))
		if err != nil {
			return fmt.Errorf("sqlrepo: save call site location: %w", err)
		}
		calleeRefRow, err := getOrCreateReference(tx, calleeSymbolRow.ID, calleeLocRow.ID)
		if err != nil {
			return fmt.Errorf("sqlrepo: save call site reference: %w", err)
		}
		if err := tx.Model(defRow).Association("InternalReferences").Append(calleeRefRow); err != nil {
			return fmt.Errorf("sqlrepo: link definition to call site: %w", err)
		}
	}
	return nil
}

func symbolFromRow(row Symbol) model.Symbol {
	kind := model.SymbolKind(row.Kind)
	if kind == model.KindMethod {
		if row.ClassName == nil {
			return model.NewMethodCall(row.Name)
		}
		return model.NewMethod(row.Name, *row.ClassName)
	}
	return model.NewFunction(row.Name)
}

func locationFromRow(row CodeLocation) model.Location {
	return model.Location{
		FilePath:  row.FilePath,
		StartLine: row.StartLine,
		StartCol:  row.StartCol,
		EndLine:   row.EndLine,
		EndCol:    row.EndCol,
		StartByte: row.StartByte,
		EndByte:   row.EndByte,
	}
}

// Load reconstructs an IndexData from db, a direct port of
// SqlitePersistStrategy.load/_load. The bidirectional invariant is
// reconstructed purely from the definition_references containment table:
// only definitions' Calls are loaded from it; CrossRefIndex.UpdateFromData
// induces References.CalledBy on ingest.
func Load(db *gorm.DB) (model.IndexData, error) {
	var metadata IndexMetadata
	if err := db.First(&metadata).Error; err != nil {
		return model.IndexData{}, fmt.Errorf("sqlrepo: load metadata: %w", err)
	}

	var symbolRows []Symbol
	if err := db.Find(&symbolRows).Error; err != nil {
		return model.IndexData{}, fmt.Errorf("sqlrepo: load symbols: %w", err)
	}

	data := model.IndexData{Type: metadata.IndexType}
	for _, symbolRow := range symbolRows {
		entry, err := loadEntry(db, symbolRow)
		if err != nil {
			return model.IndexData{}, err
		}
		data.Data = append(data.Data, entry)
	}
	return data, nil
}

func loadEntry(db *gorm.DB, symbolRow Symbol) (model.IndexEntry, error) {
	symbol := symbolFromRow(symbolRow)
	entry := model.IndexEntry{Symbol: symbol}

	var defRows []Definition
	if err := db.Where("symbol_id = ?", symbolRow.ID).Find(&defRows).Error; err != nil {
		return model.IndexEntry{}, fmt.Errorf("sqlrepo: load definitions: %w", err)
	}
	for _, defRow := range defRows {
		def, err := loadDefinition(db, defRow)
		if err != nil {
			return model.IndexEntry{}, err
		}
		entry.Info.Definitions = append(entry.Info.Definitions, def)
	}

	var refRows []Reference
	if err := db.Where("symbol_id = ?", symbolRow.ID).Find(&refRows).Error; err != nil {
		return model.IndexEntry{}, fmt.Errorf("sqlrepo: load references: %w", err)
	}
	for _, refRow := range refRows {
		var locRow CodeLocation
		if err := db.First(&locRow, refRow.LocationID).Error; err != nil {
			return model.IndexEntry{}, fmt.Errorf("sqlrepo: load reference location: %w", err)
		}
		entry.Info.References = append(entry.Info.References, model.Reference{Location: locationFromRow(locRow)})
	}

	return entry, nil
}

func loadDefinition(db *gorm.DB, defRow Definition) (model.Definition, error) {
	var locRow CodeLocation
	if err := db.First(&locRow, defRow.LocationID).Error; err != nil {
		return model.Definition{}, fmt.Errorf("sqlrepo: load definition location: %w", err)
	}
	def := model.Definition{Location: locationFromRow(locRow)}

	var refs []Reference
	if err := db.Model(&defRow).Association("InternalReferences").Find(&refs); err != nil {
		return model.Definition{}, fmt.Errorf("sqlrepo: load internal references: %w", err)
	}
	for _, refRow := range refs {
		var calleeSymbolRow Symbol
		if err := db.First(&calleeSymbolRow, refRow.SymbolID).Error; err != nil {
			return model.Definition{}, fmt.Errorf("sqlrepo: load call target symbol: %w", err)
		}
		var calleeLocRow CodeLocation
		if err := db.First(&calleeLocRow, refRow.LocationID).Error; err != nil {
			return model.Definition{}, fmt.Errorf("sqlrepo: load call site location: %w", err)
		}
		def.Calls = append(def.Calls, model.SymbolReference{
			Symbol:    symbolFromRow(calleeSymbolRow),
			Reference: model.PureReference{Location: locationFromRow(calleeLocRow)},
		})
	}
	return def, nil
}
