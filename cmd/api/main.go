package main

import (
	"context"
	"log"

	"ordersvc/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("orders API failed: %v", err)
	}
}
