package model

import "time"

// Field is a single named form value of a loan application.
type Field struct {
	Name  string
	Value string
}

// Application is a loan application as submitted through the upload form.
// Fields keep their submission order.
type Application struct {
	Fields []Field
}

// Get returns the value of the named field and whether it is present.
func (a Application) Get(name string) (string, bool) {
	for _, f := range a.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Map returns the fields keyed by name.
func (a Application) Map() map[string]string {
	m := make(map[string]string, len(a.Fields))
	for _, f := range a.Fields {
		m[f.Name] = f.Value
	}
	return m
}

// FieldNames lists every form field of a loan application in submission order.
var FieldNames = []string{
	"firstName",
	"lastName",
	"dateOfBirth",
	"gender",
	"mobileNo",
	"email",
	"aadharNo",
	"panNo",
	"addressLine1",
	"district",
	"taluka",
	"villageCity",
	"pincode",
	"industryName",
	"loanReason",
	"residentialAddress",
	"loanType",
	"loanAmount",
	"interestRate",
	"tenure",
	"suretyFirstName",
	"suretyLastName",
	"suretyDob",
	"suretyGender",
	"suretyMobile",
	"suretyEmail",
	"suretyAadhar",
	"suretyPan",
	"suretyBankName",
	"suretyBankBranch",
	"suretyAccountNo",
	"suretyAddress",
	"suretyDistrict",
	"suretyTaluka",
	"suretyVillage",
	"suretyPincode",
}

// TestApplication returns the fixed payload used by the upload smoke test.
// A fresh copy is returned on every call.
func TestApplication() Application {
	return Application{Fields: []Field{
		{"firstName", "Test"},
		{"lastName", "User"},
		{"dateOfBirth", "1990-01-01"},
		{"gender", "Male"},
		{"mobileNo", "9999999999"},
		{"email", "test@example.com"},
		{"aadharNo", "123456789012"},
		{"panNo", "ABCDE1234F"},
		{"addressLine1", "123 Test Street"},
		{"district", "D001"},
		{"taluka", "T001"},
		{"villageCity", "V001"},
		{"pincode", "400001"},
		{"industryName", "Test Business"},
		{"loanReason", "Business Expansion"},
		{"residentialAddress", "Same as above"},
		{"loanType", "Term Loan"},
		{"loanAmount", "100000"},
		{"interestRate", "12"},
		{"tenure", "12"},
		{"suretyFirstName", "Surety"},
		{"suretyLastName", "Person"},
		{"suretyDob", "1985-01-01"},
		{"suretyGender", "Male"},
		{"suretyMobile", "8888888888"},
		{"suretyEmail", "surety@example.com"},
		{"suretyAadhar", "987654321098"},
		{"suretyPan", "ZYXWV9876A"},
		{"suretyBankName", "Test Bank"},
		{"suretyBankBranch", "Test Branch"},
		{"suretyAccountNo", "1234567890"},
		{"suretyAddress", "456 Surety Street"},
		{"suretyDistrict", "D001"},
		{"suretyTaluka", "T001"},
		{"suretyVillage", "V001"},
		{"suretyPincode", "400002"},
	}}
}

// StoredApplication is an application as persisted by the stub server.
type StoredApplication struct {
	ID                string            `json:"id"`
	ApplicantName     string            `json:"applicantName"`
	Email             string            `json:"email"`
	LoanAmount        string            `json:"loanAmount"`
	Fields            map[string]string `json:"fields"`
	DocumentsUploaded int               `json:"documentsUploaded"`
	CreatedAt         time.Time         `json:"createdAt"`
}
