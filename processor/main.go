package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shipops-app/config"
	"shipops-app/database"
	"shipops-app/migration"
	"shipops-app/repositories"
	seed "shipops-app/seeder"
	"shipops-app/services"
	"shipops-app/utils"

	"github.com/caarlos0/env/v11"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// MailConfig konfigurasi SMTP untuk perintah report
type MailConfig struct {
	Host     string   `env:"SMTP_HOST,required"`
	Port     int      `env:"SMTP_PORT" envDefault:"465"`
	Username string   `env:"SMTP_USERNAME"`
	Password string   `env:"SMTP_PASSWORD"`
	From     string   `env:"SMTP_FROM,required"`
	To       []string `env:"REPORT_TO" envSeparator:","`
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: processor <command> [args]

Commands:
  seed <file.csv>                     import Ship Operation CSV
  seed-dir [-src dir] [-dst dir]      import semua CSV di folder unprocessed lalu pindahkan ke processed
  clean-db                            drop dan buat ulang semua tabel
  report [-to a@x,b@y]                kirim export monitoring (xlsx) lewat email`)
}

func connectDB() (*gorm.DB, error) {
	if err := database.EnsureDatabaseExists(config.DBName); err != nil {
		return nil, err
	}
	db, err := database.OpenDatabase()
	if err != nil {
		return nil, err
	}
	if err := migration.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func main() {
	config.LoadConfig()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	db, err := connectDB()
	if err != nil {
		log.Fatalf("❌ Gagal konek ke database: %v", err)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "seed":
		if len(args) != 1 {
			usage()
			os.Exit(2)
		}
		err = seedFile(db, args[0])
	case "seed-dir":
		fs := flag.NewFlagSet("seed-dir", flag.ExitOnError)
		src := fs.String("src", "data/unprocessed", "folder CSV yang belum diproses")
		dst := fs.String("dst", "data/processed", "folder tujuan setelah diproses")
		_ = fs.Parse(args)
		err = processAllCSV(db, *src, *dst)
	case "clean-db":
		err = database.CleanDatabase(db)
		if err == nil {
			fmt.Println("✅ Semua tabel dibuat ulang")
		}
	case "report":
		fs := flag.NewFlagSet("report", flag.ExitOnError)
		to := fs.String("to", "", "penerima, dipisah koma (default REPORT_TO)")
		_ = fs.Parse(args)
		err = sendReport(db, *to)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("❌ %s gagal: %v", cmd, err)
	}
}

func seedFile(db *gorm.DB, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Println("📂 Memproses:", filename)
	result, err := seed.SeedCSV(db, file)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %s: %d baris, %d dibuat, %d dilewati\n", filepath.Base(filename), result.Rows, result.Created, result.Skipped)
	return nil
}

// processAllCSV memproses semua file CSV di folder src lalu memindahkannya ke dst
func processAllCSV(db *gorm.DB, src, dst string) error {
	files, err := filepath.Glob(filepath.Join(src, "*.csv"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("Tidak ada file CSV di", src)
		return nil
	}

	if err := os.MkdirAll(dst, os.ModePerm); err != nil {
		return fmt.Errorf("gagal membuat folder processed: %w", err)
	}

	for _, file := range files {
		if err := seedFile(db, file); err != nil {
			log.Printf("❌ %s: %v", filepath.Base(file), err)
			continue
		}

		processedFilePath := filepath.Join(dst, filepath.Base(file))
		if err := os.Rename(file, processedFilePath); err != nil {
			fmt.Println("⚠️  Rename gagal, coba metode copy & delete...")
			if err := copyAndDeleteFile(file, processedFilePath); err != nil {
				return fmt.Errorf("gagal memindahkan %s ke folder processed: %w", file, err)
			}
		}
	}
	return nil
}

func copyAndDeleteFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destinationFile.Close()

	if _, err := io.Copy(destinationFile, sourceFile); err != nil {
		return err
	}

	// tutup dulu sebelum hapus, Windows mengunci file yang masih terbuka
	sourceFile.Close()
	return os.Remove(src)
}

func sendReport(db *gorm.DB, to string) error {
	var cfg MailConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("konfigurasi SMTP: %w", err)
	}
	recipients := cfg.To
	if to != "" {
		recipients = strings.Split(to, ",")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("penerima report kosong, isi -to atau REPORT_TO")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo := repositories.NewContainerMovementRepository(db)
	rows, err := repo.ListAll(ctx, utils.Pagination{SortBy: "voyage_date_berth", SortOrder: "desc"})
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("monitoring_%s.xlsx", time.Now().Format("20060102"))
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Monitoring Container Movement</h3>
				<p>Terlampir data monitoring untuk <strong>%d</strong> voyage.</p>
				<p>This is an auto-generated email. Please do not reply to this email or its recipients.</p>
			</body>
		</html>
	`, len(rows))

	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.From)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", "📦 Monitoring Container Movement "+time.Now().Format("02/01/2006"))
	msg.SetBody("text/html", body)
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		return services.WriteMonitoringWorkbook(w, rows)
	}))

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("gagal mengirim email: %w", err)
	}

	fmt.Println("✅ Report terkirim ke:", recipients)
	return nil
}
