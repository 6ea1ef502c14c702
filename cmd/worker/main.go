package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker <refresh-categories|sweep-drafts>")
	}

	switch os.Args[1] {
	case "refresh-categories":
		RunRefreshCategories()
	case "sweep-drafts":
		RunSweepDrafts()
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
