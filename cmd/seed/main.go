package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kluaihom/banana-market-backend/internal/config"
	"github.com/kluaihom/banana-market-backend/internal/db"
	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/repository"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.Cultivar{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if !forceSeed() {
		var count int64
		if err := gdb.WithContext(ctx).Model(&model.Cultivar{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count cultivars: %w", err)
		}
		if count > 0 {
			log.Printf("cultivars already exist (%d rows); skipping seed (set FORCE_SEED=true to override)", count)
			return nil
		}
	}

	repo := repository.NewCultivarRepository(gdb)
	for i := range cultivars {
		if err := repo.UpsertBySlug(ctx, &cultivars[i]); err != nil {
			return fmt.Errorf("upsert %s: %w", cultivars[i].Slug, err)
		}
	}
	log.Printf("seeded %d cultivars", len(cultivars))
	return nil
}

func forceSeed() bool {
	return strings.EqualFold(os.Getenv("FORCE_SEED"), "true")
}

var cultivars = []model.Cultivar{
	{
		Slug:        "kluai-nam-wa",
		Name:        "Pisang Awak",
		ThaiName:    "กล้วยน้ำว้า",
		Description: "The most widely grown cultivar in Thailand. Short, plump fruit with a firm, mildly sweet flesh that holds its shape when boiled, grilled, or made into kluai buat chi. Tolerant of poor soil and drought.",
	},
	{
		Slug:        "kluai-hom-thong",
		Name:        "Gros Michel",
		ThaiName:    "กล้วยหอมทอง",
		Description: "The premium fresh-eating banana of the Thai market. Long golden fruit with a strong fragrance and creamy sweet flesh. Bruises easily and needs careful handling after harvest.",
	},
	{
		Slug:        "kluai-khai",
		Name:        "Kluai Khai",
		ThaiName:    "กล้วยไข่",
		Description: "Small egg-sized fruit with thin skin and dense, honey-sweet flesh. The signature cultivar of Kamphaeng Phet and the classic pairing for khao tom mat. Ripens fast once cut.",
	},
	{
		Slug:        "kluai-hak-muk",
		Name:        "Kluai Hak Muk",
		ThaiName:    "กล้วยหักมุก",
		Description: "Large angular fruit with a starchy flesh that is rarely eaten raw. Best grilled or roasted, which brings out a chestnut-like sweetness. A common street-food banana.",
	},
	{
		Slug:        "kluai-lep-mu-nang",
		Name:        "Lady Finger",
		ThaiName:    "กล้วยเล็บมือนาง",
		Description: "Slender finger-sized fruit grown mainly in Chumphon. Fragrant and very sweet, often sun-dried whole. The bunch ripens evenly, making it popular for processing.",
	},
	{
		Slug:        "kluai-nak",
		Name:        "Red Dacca",
		ThaiName:    "กล้วยนาก",
		Description: "A red-skinned cultivar with pale orange flesh and a faint raspberry note. Grown in small quantities and sold mostly as an ornamental or specialty fruit.",
	},
}
