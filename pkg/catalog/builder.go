package catalog

// NewSchema creates a new empty schema.
func NewSchema() *Schema {
	return &Schema{Databases: make(map[string]*Database)}
}

// AddDatabase adds a database and returns it.
// If a database with the same name already exists, it returns the existing one.
func (s *Schema) AddDatabase(name string) *Database {
	if s.Databases == nil {
		s.Databases = make(map[string]*Database)
	}
	if db, ok := s.Databases[name]; ok {
		return db
	}
	db := &Database{Name: name, Tables: make(map[string]*Table)}
	s.Databases[name] = db
	return db
}

// WithComment sets the database comment.
func (d *Database) WithComment(comment string) *Database {
	d.Comment = comment
	return d
}

// AddTable adds a table to the database and returns it.
// If a table with the same name already exists, it returns the existing one.
func (d *Database) AddTable(name string) *Table {
	if d.Tables == nil {
		d.Tables = make(map[string]*Table)
	}
	if t, ok := d.Tables[name]; ok {
		return t
	}
	t := &Table{Name: name, Columns: make(map[string]*Column)}
	d.Tables[name] = t
	return t
}

// AddColumn adds a column with the next ordinal and returns the table.
func (t *Table) AddColumn(name, typ string) *Table {
	if t.Columns == nil {
		t.Columns = make(map[string]*Column)
	}
	t.Columns[name] = &Column{Type: typ, Nullable: true, Ordinal: len(t.Columns) + 1}
	return t
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	if t == nil {
		return nil
	}
	return t.Columns[name]
}

// WithPrimaryKey marks columns as the primary key.
func (t *Table) WithPrimaryKey(columns ...string) *Table {
	t.PrimaryKeys = append(t.PrimaryKeys, columns...)
	for _, name := range columns {
		if c, ok := t.Columns[name]; ok {
			c.PrimaryKey = true
			c.Nullable = false
		}
	}
	return t
}

// WithForeignKey adds a foreign key from column to table.refColumn.
func (t *Table) WithForeignKey(column, table, refColumn string) *Table {
	t.ForeignKeys = append(t.ForeignKeys, ForeignKey{
		Columns:           []string{column},
		ReferencedTable:   table,
		ReferencedColumns: []string{refColumn},
	})
	if c, ok := t.Columns[column]; ok {
		c.ForeignKey = &ColumnRef{Table: table, Column: refColumn}
	}
	return t
}

// WithComment sets the table comment.
func (t *Table) WithComment(comment string) *Table {
	t.Comment = comment
	return t
}
