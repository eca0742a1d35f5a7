package database

import (
	"fmt"
	"time"

	"thunder-cargo/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedBase: demo hareketlerinin başlangıç zamanı
var SeedBase = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

// Seed: demo verisini yükler. Şube tablosu doluysa hiçbir şey yapmaz.
// Dönüş değeri verinin bu çağrıda yüklenip yüklenmediğidir.
func Seed(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&models.Branch{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("şube sayısı alınamadı: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	at := func(hours int) time.Time { return SeedBase.Add(time.Duration(hours) * time.Hour) }
	uptr := func(v uint) *uint { return &v }

	branches := []models.Branch{
		{Name: "Kadikoy Branch", Address: "Caferaga Mah. Moda Cad. No:12", City: "Istanbul", District: "Kadikoy", Phone: "02163450001", Email: "kadikoy@thundercargo.com"},
		{Name: "Besiktas Branch", Address: "Sinanpasa Mah. Barbaros Blv. No:45", City: "Istanbul", District: "Besiktas", Phone: "02123450002", Email: "besiktas@thundercargo.com"},
		{Name: "Uskudar Branch", Address: "Mimar Sinan Mah. Hakimiyet-i Milliye Cad. No:7", City: "Istanbul", District: "Uskudar", Phone: "02163450003", Email: "uskudar@thundercargo.com"},
		{Name: "Moda Branch", Address: "Moda Mah. Bahariye Cad. No:88", City: "Istanbul", District: "Kadikoy", Phone: "02163450004", Email: "moda@thundercargo.com"},
		{Name: "Cankaya Branch", Address: "Kizilay Mah. Ataturk Blv. No:101", City: "Ankara", District: "Cankaya", Phone: "03123450005", Email: "cankaya@thundercargo.com"},
		{Name: "Kecioren Branch", Address: "Etlik Mah. Yunus Emre Cad. No:3", City: "Ankara", District: "Kecioren", Phone: "03123450006", Email: "kecioren@thundercargo.com"},
		{Name: "Konak Branch", Address: "Alsancak Mah. Kibris Sehitleri Cad. No:19", City: "Izmir", District: "Konak", Phone: "02323450007", Email: "konak@thundercargo.com"},
	}
	services := []models.ServiceType{
		{Name: "Standard"},
		{Name: "Express"},
		{Name: "Same Day"},
	}
	statuses := []models.CargoStatusType{
		{Description: "Shipment Accepted"},
		{Description: "In Transit"},
		{Description: "Arrived at Transfer Center"},
		{Description: "Out for Delivery"},
		{Description: "Delivered"},
	}
	customers := []models.Customer{
		{ID: "CU001", FirstName: "Ahmet", LastName: "Yilmaz", Email: "ahmet.yilmaz@example.com", Phone: "5321112233", City: "Istanbul"},
		{ID: "CU002", FirstName: "Ayse", LastName: "Demir", Email: "ayse.demir@example.com", Phone: "5332223344", City: "Ankara"},
		{ID: "CU003", FirstName: "Mehmet", LastName: "Kaya", Email: "mehmet.kaya@example.com", Phone: "5343334455", City: "Izmir"},
		{ID: "CU004", FirstName: "Zeynep", LastName: "Celik", Email: "zeynep.celik@example.com", Phone: "5354445566", City: "Istanbul"},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, rows := range []any{&branches, &services, &statuses, &customers} {
			if err := tx.Create(rows).Error; err != nil {
				return err
			}
		}

		// Referanslar oluşan ID'lerden alınır (1 tabanlı fikstür sırası)
		br := func(n int) uint { return branches[n-1].ID }
		st := func(n int) uint { return statuses[n-1].ID }

		cargos := []models.Cargo{
			{ID: "CG001", SenderCustID: "CU001", ReceiverCustID: "CU002", OriginBranchID: br(1), DestBranchID: br(5), ServiceTypeID: services[1].ID, Weight: 2.5, ShippingCost: 120.50, CurrentStatus: "In Transit", PaymentStatus: models.PaymentPending, LastUpdated: at(20)},
			{ID: "CG002", SenderCustID: "CU002", ReceiverCustID: "CU001", OriginBranchID: br(5), DestBranchID: br(2), ServiceTypeID: services[0].ID, Weight: 1.0, ShippingCost: 80.00, CurrentStatus: "Out for Delivery", PaymentStatus: models.PaymentPaid, LastUpdated: at(30)},
			{ID: "CG003", SenderCustID: "CU001", ReceiverCustID: "CU003", OriginBranchID: br(3), DestBranchID: br(7), ServiceTypeID: services[0].ID, Weight: 4.2, ShippingCost: 95.75, CurrentStatus: "Delivered", PaymentStatus: models.PaymentPaid, LastUpdated: at(48)},
			{ID: "CG004", SenderCustID: "CU003", ReceiverCustID: "CU001", OriginBranchID: br(7), DestBranchID: br(1), ServiceTypeID: services[2].ID, Weight: 0.8, ShippingCost: 150.00, CurrentStatus: "Preparing", PaymentStatus: models.PaymentPending, LastUpdated: at(50)},
			{ID: "CG005", SenderCustID: "CU004", ReceiverCustID: "CU001", OriginBranchID: br(2), DestBranchID: br(4), ServiceTypeID: services[0].ID, Weight: 3.0, ShippingCost: 60.00, CurrentStatus: "Delivered", PaymentStatus: models.PaymentPaid, LastUpdated: at(12)},
		}
		logs := []models.TrackingLog{
			{CargoID: "CG001", StatusID: st(1), BranchID: br(1), LogTimestamp: at(0)},
			{CargoID: "CG001", StatusID: st(2), BranchID: br(1), LogTimestamp: at(3)},
			{CargoID: "CG001", StatusID: st(3), BranchID: br(5), LogTimestamp: at(20)},
			{CargoID: "CG002", StatusID: st(1), BranchID: br(5), LogTimestamp: at(1)},
			{CargoID: "CG002", StatusID: st(2), BranchID: br(5), LogTimestamp: at(6)},
			{CargoID: "CG002", StatusID: st(4), BranchID: br(2), LogTimestamp: at(30)},
			{CargoID: "CG003", StatusID: st(1), BranchID: br(3), LogTimestamp: at(2)},
			{CargoID: "CG003", StatusID: st(2), BranchID: br(3), LogTimestamp: at(8)},
			{CargoID: "CG003", StatusID: st(4), BranchID: br(7), LogTimestamp: at(40)},
			{CargoID: "CG003", StatusID: st(5), BranchID: br(7), LogTimestamp: at(48)},
			{CargoID: "CG004", StatusID: st(1), BranchID: br(7), LogTimestamp: at(50)},
			{CargoID: "CG005", StatusID: st(1), BranchID: br(2), LogTimestamp: at(4)},
			{CargoID: "CG005", StatusID: st(5), BranchID: br(4), LogTimestamp: at(12)},
		}
		invoices := []models.Invoice{
			{CargoID: "CG001", CustID: "CU001", TotalAmount: 120.50, InvoiceDate: at(0)},
			{CargoID: "CG002", CustID: "CU002", TotalAmount: 80.00, InvoiceDate: at(1)},
			{CargoID: "CG003", CustID: "CU001", TotalAmount: 95.75, InvoiceDate: at(2)},
			{CargoID: "CG004", CustID: "CU003", TotalAmount: 150.00, InvoiceDate: at(50)},
			{CargoID: "CG005", CustID: "CU004", TotalAmount: 60.00, InvoiceDate: at(4)},
		}
		employees := []models.Employee{
			{FirstName: "Can", LastName: "Ozturk", Position: models.PositionBranchManager, Salary: 45000, Phone: "5301234567", BranchID: uptr(br(1)), HireDate: time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)},
			{FirstName: "Elif", LastName: "Sahin", Position: models.PositionCourier, Salary: 24000, Phone: "5307654321", BranchID: uptr(br(2)), HireDate: time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)},
			{FirstName: "Burak", LastName: "Aydin", Position: models.PositionDriver, Salary: 28000, Phone: "5309876543", BranchID: uptr(br(5)), HireDate: time.Date(2025, time.February, 17, 0, 0, 0, 0, time.UTC)},
		}

		for _, rows := range []any{&cargos, &logs, &invoices, &employees} {
			if err := tx.Omit(clause.Associations).Create(rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("demo verisi yüklenemedi: %w", err)
	}
	return true, nil
}
