package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/evalsec/cyberassess/data"
	"github.com/evalsec/cyberassess/internal/config"
	"github.com/evalsec/cyberassess/internal/database"
	"github.com/evalsec/cyberassess/internal/models"
	"github.com/evalsec/cyberassess/internal/services"
)

// seedQuestion mirrors the embedded catalog entry shape.
type seedQuestion struct {
	Text    string `json:"text"`
	Type    string `json:"type"`
	Section string `json:"section"`
	Order   int    `json:"order"`
	Options []struct {
		Text  string `json:"text"`
		Value string `json:"value"`
		Order int    `json:"order"`
	} `json:"options"`
}

func main() {
	var force bool
	flag.BoolVar(&force, "force", false, "seed even when questions already exist")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	count, err := services.CountQuestions(db)
	if err != nil {
		log.Fatalf("Failed to count questions: %v", err)
	}
	if count > 0 && !force {
		log.Printf("Question catalog already seeded (%d questions), nothing to do", count)
		return
	}

	var catalog []seedQuestion
	if err := json.Unmarshal(data.QuestionCatalog, &catalog); err != nil {
		log.Fatalf("Failed to parse embedded question catalog: %v", err)
	}

	seeded := 0
	for _, sq := range catalog {
		if !models.ValidQuestionType(sq.Type) {
			log.Fatalf("Catalog entry %q has unknown type %q", sq.Text, sq.Type)
		}

		question := models.Question{
			Text:    sq.Text,
			Type:    sq.Type,
			Section: sq.Section,
			Order:   sq.Order,
		}
		for _, o := range sq.Options {
			question.Options = append(question.Options, models.Option{
				Text:  o.Text,
				Value: o.Value,
				Order: o.Order,
			})
		}

		if err := services.CreateQuestion(db, &question); err != nil {
			log.Fatalf("Failed to seed question %q: %v", sq.Text, err)
		}
		seeded++
	}

	fmt.Printf("Seeded %d questions\n", seeded)
}
