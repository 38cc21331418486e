// Command seed loads a three-generation sample family into a store and prints
// the resolved family set and layout statistics. Useful as a smoke check and
// as demo data for the server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/kintree/kintree/internal/core"
	"github.com/kintree/kintree/internal/core/family"
	"github.com/kintree/kintree/internal/core/layout"
	"github.com/kintree/kintree/internal/core/model"
	"github.com/kintree/kintree/internal/store"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	st, err := openStore()
	if err != nil {
		fmt.Printf("Failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close(ctx)

	engine := core.New(st)

	fmt.Println("1. Seeding persons...")
	focusID, err := seedFamily(ctx, engine)
	if err != nil {
		fmt.Printf("FAILED: seed persons: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("PASSED: seed persons")

	fmt.Println("2. Pairing relationships...")
	if err := seedRelationships(ctx, engine); err != nil {
		fmt.Printf("FAILED: pair relationships: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("PASSED: pair relationships")

	fmt.Println("3. Resolving family set...")
	set, err := engine.ResolveFamily(ctx, focusID, family.DefaultOptions())
	if err != nil {
		fmt.Printf("FAILED: resolve: %v\n", err)
		os.Exit(1)
	}
	for _, m := range set.Members {
		fmt.Printf("  %-20s %-18s generation %+d\n", m.Person.FullName(), m.Relation, m.Generation)
	}

	fmt.Println("4. Building layout...")
	opts := layout.DefaultOptions()
	opts.FocusID = focusID
	tree, err := engine.BuildLayout(ctx, family.DefaultOptions(), opts)
	if err != nil {
		fmt.Printf("FAILED: layout: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  mode=%s nodes=%d depth=%d generations=%d families=%d\n",
		tree.Mode, tree.Stats.TotalNodes, tree.Stats.MaxDepth, tree.Stats.Generations, tree.Stats.Families)

	fit := layout.FitToViewport(tree, layout.Viewport{Width: 1280, Height: 800}, 40)
	fmt.Printf("  fit scale=%.3f offset=(%.1f, %.1f)\n", fit.Scale, fit.OffsetX, fit.OffsetY)
}

func openStore() (store.EntityStore, error) {
	switch os.Getenv("STORE_BACKEND") {
	case "sqlite":
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "kintree.db"
		}
		return store.NewSQLiteStore(path)
	case "memgraph":
		uri := os.Getenv("MEMGRAPH_URI")
		if uri == "" {
			uri = "bolt://localhost:7687"
		}
		return store.NewMemgraphStore(uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"))
	default:
		return store.NewMemoryStore(), nil
	}
}

func seedFamily(ctx context.Context, engine *core.Kintree) (string, error) {
	year := func(y int) *int { return &y }

	persons := []model.Person{
		{ID: "george", FirstName: "George", LastName: "Hale", Gender: model.GenderMale, BirthYear: year(1921), DeathYear: year(1999)},
		{ID: "margaret", FirstName: "Margaret", LastName: "Hale", Gender: model.GenderFemale, BirthYear: year(1925), SpouseID: "george"},
		{ID: "arthur", FirstName: "Arthur", LastName: "Hale", Gender: model.GenderMale, BirthYear: year(1950), FatherID: "george", MotherID: "margaret"},
		{ID: "june", FirstName: "June", LastName: "Hale", Gender: model.GenderFemale, BirthYear: year(1953), SpouseID: "arthur"},
		{ID: "rose", FirstName: "Rose", LastName: "Park", Gender: model.GenderFemale, BirthYear: year(1948), FatherID: "george", MotherID: "margaret"},
		{ID: "daniel", FirstName: "Daniel", LastName: "Hale", Gender: model.GenderMale, BirthYear: year(1980), FatherID: "arthur", MotherID: "june"},
		{ID: "emma", FirstName: "Emma", LastName: "Hale", Gender: model.GenderFemale, BirthYear: year(1983), FatherID: "arthur", MotherID: "june"},
		{ID: "leo", FirstName: "Leo", LastName: "Park", Gender: model.GenderMale, BirthYear: year(1979), MotherID: "rose"},
	}

	for i := range persons {
		if _, err := engine.SavePerson(ctx, &persons[i]); err != nil {
			return "", err
		}
	}
	return "daniel", nil
}

func seedRelationships(ctx context.Context, engine *core.Kintree) error {
	pairs := []struct {
		typ      model.RelationshipType
		from, to string
	}{
		{model.TypeSibling, "daniel", "emma"},
		{model.TypeGrandparent, "george", "daniel"},
		{model.TypeAuntUncle, "rose", "daniel"},
		{model.TypeCousin, "daniel", "leo"},
	}

	for _, p := range pairs {
		pairing, err := engine.CreateRelationship(ctx, p.typ, p.from, p.to)
		if err != nil {
			return err
		}
		reverse := "none"
		if pairing.Reverse != nil {
			reverse = string(pairing.Reverse.Type)
		}
		fmt.Printf("  %s %s->%s (reverse: %s)\n", p.typ, p.from, p.to, reverse)
	}
	return nil
}
