//go:build ignore

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/TsubasaBE/go-ods/config"
	"github.com/TsubasaBE/go-ods/stylecontainer"
	"github.com/TsubasaBE/go-ods/styles"
	"github.com/TsubasaBE/go-ods/workbook"
)

func main() {
	cfg := config.Default()
	if len(os.Args) > 1 {
		var err error
		if cfg, err = config.Load(os.Args[1]); err != nil {
			fmt.Printf("ERROR loading %s: %v\n", os.Args[1], err)
			os.Exit(1)
		}
	}
	wb, err := workbook.New(workbook.WithConfig(cfg))
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
	bold, _ := styles.NewCellStyle(styles.CellStyleConfig{Name: "Heading", FontWeightBold: true})
	sheet, _ := wb.AddSheet("Probe")
	for c, h := range []string{"name", "amount", "share", "due", "elapsed", "paid"} {
		if err := sheet.SetStyled(0, c, h, bold, nil); err != nil {
			fmt.Printf("header %d: %v\n", c, err)
		}
	}
	for r := 1; r <= 20; r++ {
		_ = sheet.SetString(r, 0, fmt.Sprintf("item %d", r))
		_ = sheet.SetCurrency(r, 1, float64(r)*9.5)
		_ = sheet.SetPercentage(r, 2, float64(r)/20)
		_ = sheet.SetDate(r, 3, time.Date(2025, 1, r, 0, 0, 0, 0, time.UTC))
		_ = sheet.SetDuration(r, 4, time.Duration(r)*37*time.Minute)
		_ = sheet.SetBool(r, 5, r%2 == 0)
	}
	if err := wb.Save("probe.ods"); err != nil {
		fmt.Printf("ERROR saving: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote probe.ods: sheets %v, %d cell styles\n", wb.Sheets(), len(wb.Styles().Styles(stylecontainer.ContentAutomaticStyles)))
}
