// Package importer ders katalogunu .xlsx veya .csv dosyasından yükler.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"hausa-platform/apperr"
	"hausa-platform/database"

	"github.com/xuri/excelize/v2"
)

// Config içe aktarma ayarları. Sütunlar başlık satırındaki adlarla eşlenir.
type Config struct {
	FilePath  string
	SheetName string // boşsa ilk sayfa
	DryRun    bool
}

// Result içe aktarma özeti.
type Result struct {
	Processed int      `json:"processed"`
	Created   int      `json:"created"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}

var requiredColumns = []string{"title", "category", "level", "xp_reward"}

// Import dosyayı okur ve dersleri başlığa göre ekler ya da günceller.
// Satır hataları Result.Errors'a yazılır; dosya ya da veritabanı hataları döner.
func Import(ctx context.Context, store *database.Store, cfg Config) (*Result, error) {
	rows, err := readRows(cfg)
	if err != nil {
		return nil, err
	}
	lessons, result, err := parseRows(rows)
	if err != nil {
		return nil, err
	}
	if cfg.DryRun {
		return result, nil
	}

	err = store.InTx(ctx, func(tx *database.Store) error {
		now := time.Now().UTC()
		for _, cl := range lessons {
			existing, err := tx.Lessons.GetByTitle(ctx, cl.Title)
			switch {
			case apperr.IsKind(err, apperr.NotFound):
				if err := tx.Lessons.Create(ctx, cl.Lesson(now)); err != nil {
					return err
				}
				result.Created++
			case err != nil:
				return err
			default:
				l := cl.Lesson(now)
				l.ID = existing.ID
				if err := tx.Lessons.Update(ctx, l); err != nil {
					return err
				}
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("İçe aktarma tamamlandı: %d yeni, %d güncellendi, %d atlandı", result.Created, result.Updated, result.Skipped)
	return result, nil
}

func readRows(cfg Config) ([][]string, error) {
	if strings.ToLower(filepath.Ext(cfg.FilePath)) == ".csv" {
		return readCSV(cfg.FilePath)
	}
	return readExcel(cfg.FilePath, cfg.SheetName)
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excel dosyası açılamadı: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%q sayfası okunamadı: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv dosyası açılamadı: %w", err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV değişken sütun sayılı CSV okur.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv okunamadı: %w", err)
	}
	return rows, nil
}

func parseRows(rows [][]string) ([]database.CatalogLesson, *Result, error) {
	result := &Result{Errors: []string{}}
	if len(rows) == 0 {
		return nil, nil, apperr.New(apperr.InvalidArgument, "file has no header row")
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, nil, apperr.New(apperr.InvalidArgument, "missing column %q", c)
		}
	}

	seen := make(map[string]int)
	var lessons []database.CatalogLesson
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blank(row) {
			continue
		}
		result.Processed++

		cl, err := parseLesson(row, cols)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("satır %d: %v", rowNum, err))
			continue
		}
		// Aynı başlık dosyada tekrar ederse son satır geçerli
		if idx, ok := seen[cl.Title]; ok {
			lessons[idx] = cl
			result.Skipped++
			continue
		}
		seen[cl.Title] = len(lessons)
		lessons = append(lessons, cl)
	}
	return lessons, result, nil
}

func parseLesson(row []string, cols map[string]int) (database.CatalogLesson, error) {
	cell := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	cl := database.CatalogLesson{
		Title:         cell("title"),
		Description:   cell("description"),
		Content:       cell("content"),
		Category:      cell("category"),
		Difficulty:    strings.ToLower(cell("difficulty")),
		Features:      splitFeatures(cell("features")),
		Prerequisites: splitTitles(cell("prerequisites")),
	}
	if cl.Title == "" {
		return cl, fmt.Errorf("title boş")
	}
	if cl.Category == "" {
		return cl, fmt.Errorf("category boş")
	}

	var err error
	if cl.Level, err = parseInt(cell("level"), 1); err != nil || cl.Level < 1 {
		return cl, fmt.Errorf("geçersiz level %q", cell("level"))
	}
	if cl.XPReward, err = parseInt(cell("xp_reward"), 0); err != nil || cl.XPReward < 0 {
		return cl, fmt.Errorf("geçersiz xp_reward %q", cell("xp_reward"))
	}
	if cl.RequiredLevel, err = parseInt(cell("required_level"), 1); err != nil || cl.RequiredLevel < 1 {
		return cl, fmt.Errorf("geçersiz required_level %q", cell("required_level"))
	}
	if cl.EstimatedTime, err = parseInt(cell("estimated_time"), 0); err != nil || cl.EstimatedTime < 0 {
		return cl, fmt.Errorf("geçersiz estimated_time %q", cell("estimated_time"))
	}
	cl.HasAudio = parseBool(cell("has_audio"))
	cl.HasVideo = parseBool(cell("has_video"))
	return cl, nil
}

func parseInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	// excelize sayıları "10.0" biçiminde döndürebilir
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f), nil
	}
	return strconv.Atoi(s)
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "evet", "x":
		return true
	}
	return false
}

func splitFeatures(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitTitles ders başlıklarını ';' ile böler; başlıklar virgül içerebilir.
func splitTitles(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
