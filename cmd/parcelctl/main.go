// parcelctl — проверка запросов "товар + условие оплаты" из файла по JSON-справочнику.
package main

import (
	"os"

	"github.com/Gunvolt24/parcel_product/cmd/parcelctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
