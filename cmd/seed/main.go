package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Initsogar/gutenberg/internal/model"
	"github.com/Initsogar/gutenberg/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// Fixed ids so the seeded documents can reference each other and the
// cyclic pair actually cycles across runs.
var (
	seedUserId   = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	heroId       = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	ctaId        = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002")
	landingId    = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000003")
	ouroborosAId = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001")
	ouroborosBId = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	patterns := []model.Pattern{
		{
			Id:          heroId,
			Title:       "Hero",
			Description: "Heading and intro copy; the heading is override-enabled",
			Content: datatypes.JSON(`{
				"root": {
					"type": "core/group",
					"children": [
						{"type": "core/heading", "attributes": {"metadata": {"bindings": {"content": {"source": "core/pattern-overrides"}}}, "content": "Welcome"}},
						{"type": "core/paragraph", "attributes": {"content": "Intro copy"}}
					]
				}
			}`),
			SyncStatus: "synced",
			UserId:     seedUserId,
		},
		{
			Id:          ctaId,
			Title:       "Call to Action",
			Description: "Button row, nothing overridable",
			Content: datatypes.JSON(`{
				"root": {
					"type": "core/buttons",
					"children": [
						{"type": "core/button", "attributes": {"text": "Get started"}}
					]
				}
			}`),
			SyncStatus: "synced",
			UserId:     seedUserId,
		},
		{
			Id:          landingId,
			Title:       "Landing Section",
			Description: "Composes the hero and the call to action",
			Content: datatypes.JSON(fmt.Sprintf(`{
				"root": {
					"type": "core/group",
					"children": [
						{"type": "core/block", "attributes": {"ref": "%s"}},
						{"type": "core/block", "attributes": {"ref": "%s"}}
					]
				}
			}`, heroId, ctaId)),
			SyncStatus: "synced",
			UserId:     seedUserId,
		},
		// Mutually recursive pair; rendering either must fall back with a
		// cycle status instead of looping.
		{
			Id:          ouroborosAId,
			Title:       "Ouroboros A",
			Description: "References Ouroboros B",
			Content: datatypes.JSON(fmt.Sprintf(`{
				"root": {
					"type": "core/group",
					"children": [
						{"type": "core/paragraph", "attributes": {"content": "A"}},
						{"type": "core/block", "attributes": {"ref": "%s"}}
					]
				}
			}`, ouroborosBId)),
			SyncStatus: "unsynced",
			UserId:     seedUserId,
		},
		{
			Id:          ouroborosBId,
			Title:       "Ouroboros B",
			Description: "References Ouroboros A",
			Content: datatypes.JSON(fmt.Sprintf(`{
				"root": {
					"type": "core/group",
					"children": [
						{"type": "core/paragraph", "attributes": {"content": "B"}},
						{"type": "core/block", "attributes": {"ref": "%s"}}
					]
				}
			}`, ouroborosAId)),
			SyncStatus: "unsynced",
			UserId:     seedUserId,
		},
	}

	for _, p := range patterns {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&p).Error
		if err != nil {
			log.Fatalf("Error: Failed to seed pattern %q: %v", p.Title, err)
		}
		log.Printf("Seeded pattern %q (%s)", p.Title, p.Id)
	}

	log.Println("Seeding complete.")
}
