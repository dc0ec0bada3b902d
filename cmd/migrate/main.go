package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"mirage-api/pkg/geo"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed|rehash]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	case "rehash":
		if err := rehashQuestions(ctx, conn); err != nil {
			log.Fatalf("Failed to rehash questions: %v", err)
		}
		fmt.Println("✅ Geohashes recomputed successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed|rehash]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS questions CASCADE`,
		`DROP TABLE IF EXISTS teams CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			id       char(20) PRIMARY KEY,
			title    text NOT NULL,
			question text NOT NULL,
			answer   text NOT NULL,
			hint     text NOT NULL,
			lat      double precision NOT NULL,
			lng      double precision NOT NULL,
			geohash  text NOT NULL,
			points   integer NOT NULL,
			solves   jsonb NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS teams (
			id      text PRIMARY KEY,
			name    text NOT NULL,
			members jsonb NOT NULL DEFAULT '[]',
			points  integer NOT NULL DEFAULT 0,
			solved  jsonb NOT NULL DEFAULT '[]'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_teams_members ON teams USING GIN (members)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_geohash ON questions (geohash)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	fmt.Println("  Created: questions, teams")

	return nil
}

type seedQuestion struct {
	id     string
	title  string
	prompt string
	answer string
	hint   string
	lat    float64
	lng    float64
	points int
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	questions := []seedQuestion{
		{
			id:     "fountain0000000seven",
			title:  "The Singing Fountain",
			prompt: "How many jets does the fountain have?",
			answer: "seven",
			hint:   "Look for falling water near the main lawn",
			lat:    30.3539, lng: 76.3683,
			points: 100,
		},
		{
			id:     "gate000000000001912a",
			title:  "The Old Gate",
			prompt: "Which year is carved on the arch?",
			answer: "1912",
			hint:   "The oldest entrance still stands",
			lat:    30.3560, lng: 76.3700,
			points: 100,
		},
		{
			id:     "library00000000redqa",
			title:  "The Reading Room",
			prompt: "What color is the rope by the stairwell?",
			answer: "red",
			hint:   "Where the books sleep",
			lat:    30.3580, lng: 76.3720,
			points: 100,
		},
	}

	for _, q := range questions {
		hash := geo.Encode(geo.Coordinate{Lat: q.lat, Lng: q.lng}, geo.BucketPrecision)
		_, err := conn.Exec(ctx,
			`INSERT INTO questions (id, title, question, answer, hint, lat, lng, geohash, points)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (id) DO NOTHING`,
			q.id, q.title, q.prompt, q.answer, q.hint, q.lat, q.lng, hash, q.points,
		)
		if err != nil {
			return fmt.Errorf("failed to seed question %s: %w", q.id, err)
		}
	}
	fmt.Printf("  Seeded %d questions\n", len(questions))

	teams := []struct {
		id, name string
		members  string
	}{
		{"team-blue", "Blue", `["m-blue-1", "m-blue-2"]`},
		{"team-red", "Red", `["m-red-1", "m-red-2"]`},
	}

	for _, t := range teams {
		_, err := conn.Exec(ctx,
			`INSERT INTO teams (id, name, members) VALUES ($1, $2, $3::jsonb)
			 ON CONFLICT (id) DO NOTHING`,
			t.id, t.name, t.members,
		)
		if err != nil {
			return fmt.Errorf("failed to seed team %s: %w", t.id, err)
		}
	}
	fmt.Printf("  Seeded %d teams\n", len(teams))

	return nil
}

// rehashQuestions recomputes every stored geohash. Run after changing the
// bucket precision.
func rehashQuestions(ctx context.Context, conn *pgx.Conn) error {
	rows, err := conn.Query(ctx, `SELECT id, lat, lng FROM questions`)
	if err != nil {
		return fmt.Errorf("failed to list questions: %w", err)
	}

	type row struct {
		id       string
		lat, lng float64
	}
	var all []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.lat, &r.lng); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan question: %w", err)
		}
		all = append(all, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read questions: %w", err)
	}

	for _, r := range all {
		hash := geo.Encode(geo.Coordinate{Lat: r.lat, Lng: r.lng}, geo.BucketPrecision)
		if _, err := conn.Exec(ctx,
			`UPDATE questions SET geohash = $2 WHERE id = $1`, r.id, hash,
		); err != nil {
			return fmt.Errorf("failed to rehash question %s: %w", r.id, err)
		}
	}
	fmt.Printf("  Rehashed %d questions\n", len(all))

	return nil
}
