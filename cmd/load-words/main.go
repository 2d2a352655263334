package main

import (
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strings"

	"activity-game/internal/config"
	"activity-game/internal/db"
	"activity-game/internal/game"
)

type wordRecord struct {
	Method game.MethodType
	Value  string
}

func main() {
	filePath := flag.String("file", "words.csv", "path to words csv")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open(config.Load())
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	records, err := readWords(*filePath)
	if err != nil {
		log.Fatalf("failed to read words: %v", err)
	}

	inserted := 0
	for _, record := range records {
		if err := db.UpsertWord(conn, record.Value, record.Method); err != nil {
			log.Fatalf("failed to upsert word: %v", err)
		}
		inserted++
	}

	log.Printf("loaded %d words", inserted)
}

// readWords parses a csv with a header row of method,value. Rows with an
// unknown method or a blank value are skipped.
func readWords(path string) ([]wordRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var records []wordRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			continue
		}
		method, err := game.ParseMethodType(strings.TrimSpace(row[0]))
		if err != nil {
			log.Printf("skipping row %d: %v", i+1, err)
			continue
		}
		value := strings.TrimSpace(row[1])
		if value == "" {
			continue
		}
		records = append(records, wordRecord{Method: method, Value: value})
	}
	return records, nil
}
