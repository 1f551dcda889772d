package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/seonkim/beanshop-backend/config"
	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/internal/app/repository"
	"github.com/seonkim/beanshop-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Repository 생성
	productRepo := repository.NewProductRepository(db.GetDB())

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// 배치로 저장
	batchSize := 100
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

// readProductsFromXLSX expects columns in order: 상품명, 가격, 설명,
// 이미지 URL, 재고. 첫 행은 헤더로 취급한다.
func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seenNames := make(map[string]bool) // 중복 제거용
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 2 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		priceStr := strings.TrimSpace(row[1])

		description := ""
		if len(row) > 2 {
			description = strings.TrimSpace(row[2])
		}
		image := ""
		if len(row) > 3 {
			image = strings.TrimSpace(row[3])
		}
		stock := 0
		if len(row) > 4 {
			if parsed, err := strconv.Atoi(strings.TrimSpace(row[4])); err == nil {
				stock = parsed
			}
		}

		if name == "" || len([]rune(name)) < 2 {
			skippedCount++
			continue
		}

		price, err := strconv.Atoi(priceStr)
		if err != nil || price < 0 {
			skippedCount++
			continue
		}

		if seenNames[name] {
			skippedCount++
			continue
		}
		seenNames[name] = true

		products = append(products, model.Product{
			ProductName:  name,
			Price:        price,
			Description:  description,
			ProductImage: image,
			Stock:        stock,
		})
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(products))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return products, nil
}
