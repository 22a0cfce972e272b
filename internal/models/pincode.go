package models

// PincodeData - справочная запись почтового индекса для автозаполнения города и страны
type PincodeData struct {
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}
