// Package iotaxdb implements taxonomy store contracts of pkg/taxon on top
// of SQLite. This is an impure I/O package.
package iotaxdb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/nwr/pkg/config"
	"github.com/gnames/nwr/pkg/taxon"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// driverName is the database/sql name of the modernc.org/sqlite driver.
const driverName = "sqlite"

// builder implements taxon.Builder.
type builder struct {
	cfg *config.Config
}

// NewBuilder creates a Builder that ingests NCBI dumps into
// taxonomy.sqlite located in the same directory as the dumps.
func NewBuilder(cfg *config.Config) taxon.Builder {
	return &builder{cfg: cfg}
}

// dumpData keeps parsed content of the three dump files.
type dumpData struct {
	divisions []taxon.Division
	nodes     []taxon.Node
	names     []taxon.Name
}

func (d *dumpData) total() int {
	return len(d.divisions) + len(d.nodes) + len(d.names)
}

// Build parses the dumps and writes the store. Everything is written into
// a temporary file inside a single transaction, the file replaces the
// previous store only after a successful commit.
func (b *builder) Build(ctx context.Context, dumpDir string) error {
	start := time.Now()

	gn.Info("(1/3) Reading NCBI dumps from <em>%s</em>...", dumpDir)
	data, err := b.readDumps(ctx, dumpDir)
	if err != nil {
		return err
	}
	gn.Message(
		"<em>Read %s divisions, %s nodes and %s names</em>",
		humanize.Comma(int64(len(data.divisions))),
		humanize.Comma(int64(len(data.nodes))),
		humanize.Comma(int64(len(data.names))),
	)

	target := config.StorePath(dumpDir)
	tmp := target + ".tmp"
	_ = os.Remove(tmp)

	gn.Info("(2/3) Loading data into <em>%s</em>...", target)
	if err = b.write(ctx, tmp, data); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	gn.Info("(3/3) Replacing the taxonomy store...")
	if err = os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return CommitError(target, err)
	}

	dur := time.Since(start)
	slog.Info("Taxonomy store created",
		"path", target,
		"rows", data.total(),
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info("Taxonomy store is ready. Elapsed time: <em>%s</em>",
		gnfmt.TimeString(dur.Seconds()))
	return nil
}

// readDumps parses the three dump files concurrently.
func (b *builder) readDumps(
	ctx context.Context,
	dumpDir string,
) (*dumpData, error) {
	var res dumpData
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.cfg.JobsNumber, 1))

	g.Go(func() error {
		var err error
		res.divisions, err = readDivisions(ctx, dumpDir)
		return err
	})
	g.Go(func() error {
		var err error
		res.nodes, err = readNodes(ctx, dumpDir)
		return err
	})
	g.Go(func() error {
		var err error
		res.names, err = readNames(ctx, dumpDir)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}

func (b *builder) write(ctx context.Context, path string, data *dumpData) error {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return StoreOpenError(path, err)
	}
	defer db.Close()

	// the file is private until renamed, durability comes from the rename
	for _, p := range []string{
		"PRAGMA journal_mode = OFF",
		"PRAGMA synchronous = OFF",
	} {
		if _, err = db.ExecContext(ctx, p); err != nil {
			return StoreOpenError(path, err)
		}
	}

	if err = createSchema(db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return CommitError(path, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var bar *pb.ProgressBar
	if b.cfg.WithProgressBar {
		bar = pb.Full.Start(data.total())
		bar.Set("prefix", "Inserting rows: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}
	prog := &progress{bar: bar, batch: max(b.cfg.BatchSize, 1)}

	err = insertRows(ctx, tx, "division",
		"INSERT INTO division (id, name) VALUES (?, ?)",
		data.divisions, prog,
		func(d taxon.Division) []any { return []any{d.ID, d.Name} },
	)
	if err != nil {
		return err
	}

	err = insertRows(ctx, tx, "node",
		`INSERT INTO node (tax_id, parent_tax_id, rank, division_id, comment)
		 VALUES (?, ?, ?, ?, ?)`,
		data.nodes, prog,
		func(n taxon.Node) []any {
			return []any{n.TaxID, n.ParentTaxID, n.Rank, n.DivisionID, n.Comment}
		},
	)
	if err != nil {
		return err
	}

	err = insertRows(ctx, tx, "name",
		"INSERT INTO name (id, tax_id, name, name_class) VALUES (?, ?, ?, ?)",
		data.names, prog,
		func(n taxon.Name) []any {
			return []any{n.ID, n.TaxID, n.Name, n.NameClass}
		},
	)
	if err != nil {
		return err
	}

	for _, ddl := range taxon.IndexDDL() {
		if _, err = tx.ExecContext(ctx, ddl); err != nil {
			err = IndexError(ddl, err)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return CommitError(path, err)
	}
	return nil
}

// createSchema creates tables from pkg/taxon models using GORM AutoMigrate
// on the already opened connection.
func createSchema(db *sql.DB) error {
	gormDB, err := gorm.Open(
		sqlite.New(sqlite.Config{Conn: db}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return SchemaError(err)
	}
	if err = gormDB.AutoMigrate(taxon.AllModels()...); err != nil {
		return SchemaError(err)
	}
	return nil
}

// progress reports inserted rows to the progress bar and to the log.
type progress struct {
	bar   *pb.ProgressBar
	batch int
	count int
}

func (p *progress) add(n int) {
	p.count += n
	if p.bar != nil {
		p.bar.Add(n)
	}
	if p.count%p.batch == 0 {
		slog.Debug("Inserted rows", "count", humanize.Comma(int64(p.count)))
	}
}

func insertRows[T any](
	ctx context.Context,
	tx *sql.Tx,
	table, query string,
	rows []T,
	prog *progress,
	args func(T) []any,
) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return InsertError(table, err)
	}
	defer stmt.Close()

	for i, r := range rows {
		if i%prog.batch == 0 {
			if err = ctx.Err(); err != nil {
				return InsertError(table, err)
			}
		}
		if _, err = stmt.ExecContext(ctx, args(r)...); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			return InsertError(table, err)
		}
		prog.add(1)
	}
	slog.Info("Inserted rows", "table", table,
		"count", humanize.Comma(int64(len(rows))))
	return nil
}
