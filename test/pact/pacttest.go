//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "northwind-orders-api"
	ConsumerName = "order-desk"

	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "order with id 42 exists"
	StateOrderMissing   = "no order with id 404"
)

const (
	ExistingOrderID int64 = 42
	MissingOrderID  int64 = 404

	ExampleCustomerID = "VINET"
	ExampleEmployeeID = 5
	ExampleShipperID  = 3
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the order desk consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload is the write shape the consumer posts. Products 11 and 72
// are part of the bundled reference catalog.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"customerId":     ExampleCustomerID,
		"employeeId":     ExampleEmployeeID,
		"shipperId":      ExampleShipperID,
		"orderDate":      "1996-07-04T00:00:00Z",
		"requiredDate":   "1996-08-01T00:00:00Z",
		"freight":        "32.38",
		"shipName":       "Vins et alcools Chevalier",
		"shipAddress":    "59 rue de l'Abbaye",
		"shipCity":       "Reims",
		"shipPostalCode": "51100",
		"shipCountry":    "France",
		"orderDetails": []map[string]any{
			{"productId": 11, "unitPrice": "14", "quantity": 12, "discount": 0},
			{"productId": 72, "unitPrice": "34.8", "quantity": 5, "discount": 0},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
