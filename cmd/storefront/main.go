package main

import (
	"log"

	"github.com/simple-ecommerce/storefront-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
