package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/techsolutions/storefront/internal/catalog"
)

// Writes the sample catalog fixtures the API serves. Run once before
// starting the server, or point CATALOG_DIR at your own data files.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dir := os.Getenv("CATALOG_DIR")
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("Failed to create catalog dir: %v", err)
	}

	writeJSON(filepath.Join(dir, catalog.ProductsFile), map[string]any{"products": products})
	writeJSON(filepath.Join(dir, catalog.ServicesFile), map[string]any{"services": services})
	writeJSON(filepath.Join(dir, catalog.TestimonialsFile), map[string]any{"testimonials": testimonials})

	// Reload what we just wrote so bad fixtures fail here, not at server boot.
	if _, err := catalog.Load(dir); err != nil {
		log.Fatalf("Seeded catalog does not load: %v", err)
	}

	log.Printf("Seeding completed successfully: %d products, %d services, %d testimonials in %s",
		len(products), len(services), len(testimonials), dir)
}

func writeJSON(path string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode %s: %v", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
}

var products = []catalog.Item{
	{
		ID:                1,
		Name:              "Notebook Empresarial ProBook X1",
		Category:          "notebooks",
		PriceText:         "$1.299.990",
		OriginalPriceText: "$1.499.990",
		DiscountPercent:   13,
		Rating:            4.8,
		ImageURL:          "/images/products/probook-x1.webp",
		Description:       "Notebook profesional con procesador de última generación, ideal para equipos de trabajo exigentes.",
		Features:          []string{"Intel Core i7", "32 GB RAM", "1 TB SSD", "Pantalla 15.6\" QHD"},
		Technologies:      []string{"Windows 11 Pro", "Thunderbolt 4"},
		Featured:          true,
	},
	{
		ID:           2,
		Name:         "Monitor UltraWide 34\"",
		Category:     "monitores",
		PriceText:    "$449.990",
		Rating:       4.6,
		ImageURL:     "/images/products/ultrawide-34.webp",
		Description:  "Monitor curvo ultrapanorámico para productividad y diseño.",
		Features:     []string{"3440x1440", "144 Hz", "HDR10"},
		Technologies: []string{"USB-C", "FreeSync"},
	},
	{
		ID:                3,
		Name:              "Estación de Trabajo TowerPro",
		Category:          "desktops",
		PriceText:         "$2.199.990",
		OriginalPriceText: "$2.499.990",
		DiscountPercent:   12,
		Rating:            4.9,
		ImageURL:          "/images/products/towerpro.webp",
		Description:       "Workstation para renderizado, compilación y cargas de datos intensivas.",
		Features:          []string{"Ryzen 9", "64 GB RAM", "RTX 4080", "2 TB NVMe"},
		Technologies:      []string{"Linux / Windows", "Wi-Fi 6E"},
		Featured:          true,
	},
	{
		ID:           4,
		Name:         "Teclado Mecánico Inalámbrico",
		Category:     "accesorios",
		PriceText:    "$89.990",
		Rating:       4.4,
		ImageURL:     "/images/products/teclado-mecanico.webp",
		Description:  "Teclado mecánico de perfil bajo con switches silenciosos.",
		Features:     []string{"Bluetooth 5.2", "Retroiluminación RGB", "Batería 200 h"},
		Technologies: []string{"USB-C"},
	},
	{
		ID:           5,
		Name:         "Dock Station Pro 12 en 1",
		Category:     "accesorios",
		PriceText:    "$129.990",
		Rating:       4.5,
		ImageURL:     "/images/products/dock-pro.webp",
		Description:  "Estación de conexión universal para notebooks con doble salida de video.",
		Features:     []string{"2x HDMI 4K", "Ethernet 1 Gbps", "Carga 100 W"},
		Technologies: []string{"Thunderbolt 4"},
	},
}

var services = []catalog.Item{
	{
		ID:           101,
		Name:         "Soporte TI Gestionado",
		Category:     "soporte",
		PriceText:    "$199/mes",
		Rating:       4.9,
		ImageURL:     "/images/services/soporte-gestionado.webp",
		Description:  "Mesa de ayuda y monitoreo proactivo para tu infraestructura, con SLA garantizado.",
		Features:     []string{"Soporte 24/7", "Monitoreo proactivo", "SLA 99.9%"},
		Technologies: []string{"Zabbix", "Grafana"},
		Featured:     true,
	},
	{
		ID:           102,
		Name:         "Respaldo en la Nube",
		Category:     "cloud",
		PriceText:    "$99/mes",
		Rating:       4.7,
		ImageURL:     "/images/services/respaldo-nube.webp",
		Description:  "Copias de seguridad automáticas y cifradas con retención configurable.",
		Features:     []string{"Cifrado AES-256", "Retención 90 días", "Restauración en 1 clic"},
		Technologies: []string{"S3", "Restic"},
	},
	{
		ID:           103,
		Name:         "Desarrollo Web a Medida",
		Category:     "desarrollo",
		PriceText:    "$899.990",
		Rating:       4.8,
		ImageURL:     "/images/services/desarrollo-web.webp",
		Description:  "Sitios y aplicaciones web construidas a la medida de tu negocio.",
		Features:     []string{"Diseño responsivo", "SEO técnico", "Panel de administración"},
		Technologies: []string{"React", "Go", "PostgreSQL"},
		Featured:     true,
	},
	{
		ID:           104,
		Name:         "Auditoría de Seguridad",
		Category:     "seguridad",
		PriceText:    "$349.990",
		Rating:       4.6,
		ImageURL:     "/images/services/auditoria-seguridad.webp",
		Description:  "Evaluación de vulnerabilidades y plan de remediación priorizado.",
		Features:     []string{"Pentesting", "Informe ejecutivo", "Plan de remediación"},
		Technologies: []string{"OWASP", "Nessus"},
	},
}

var testimonials = []catalog.Testimonial{
	{
		ID:       1,
		Name:     "María Fernández",
		Company:  "Comercial Andina",
		Text:     "El soporte gestionado nos redujo las caídas a cero. Respuesta inmediata y un equipo que de verdad conoce nuestra infraestructura.",
		Rating:   5,
		ImageURL: "/images/testimonials/maria-fernandez.webp",
	},
	{
		ID:       2,
		Name:     "Jorge Riquelme",
		Company:  "Logística Austral",
		Text:     "Migramos nuestros respaldos a la nube en una semana. El proceso fue transparente y el ahorro, considerable.",
		Rating:   5,
		ImageURL: "/images/testimonials/jorge-riquelme.webp",
	},
	{
		ID:       3,
		Name:     "Camila Soto",
		Company:  "Estudio Creativo Sur",
		Text:     "Nuestro nuevo sitio web duplicó las consultas de clientes en dos meses. Excelente trabajo de principio a fin.",
		Rating:   4,
		ImageURL: "/images/testimonials/camila-soto.webp",
	},
}
