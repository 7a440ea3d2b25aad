package schema

// Field describes one declared field of a schema artifact.
type Field struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Required   bool    `json:"required,omitempty"`
	Secret     bool    `json:"secret,omitempty"`
	Items      []Field `json:"items,omitempty"`      // Element fields for array types
	Properties []Field `json:"properties,omitempty"` // Sub-fields for object types
}

// Schema is a named, ordered field list, marshalable for discovery output.
type Schema struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// SettingsSchema declares the tap's configuration surface.
func SettingsSchema() Schema {
	return Schema{
		Name: "settings",
		Fields: []Field{
			{Name: "auth_token", Type: "string", Required: true, Secret: true},
			{Name: "start_date", Type: "date"},
			{Name: "publisher_ids", Type: "array", Items: []Field{{Name: "publisher_id", Type: "string"}}},
			{Name: "user_agent", Type: "string"},
		},
	}
}

// CommissionsSchema declares the emitted commission record, post-coercion.
// The six designated numeric fields are nullable: null means the API sent an
// empty or absent value.
func CommissionsSchema() Schema {
	return Schema{
		Name: "commissions",
		Fields: []Field{
			{Name: "actionTrackerName", Type: "string"},
			{Name: "actionTrackerId", Type: "string"},
			{Name: "websiteName", Type: "string"},
			{Name: "advertiserName", Type: "string"},
			{Name: "postingDate", Type: "datetime"},
			{Name: "eventDate", Type: "datetime"},
			{Name: "commissionId", Type: "string"},
			{Name: "clickDate", Type: "datetime"},
			{Name: "actionStatus", Type: "string"},
			{Name: "actionType", Type: "string"},
			{Name: "shopperId", Type: "string"},
			{Name: "publisherId", Type: "string"},
			{Name: "websiteId", Type: "string"},
			{Name: "advertiserId", Type: "string"},
			{Name: "orderDiscountUsd", Type: "number"},
			{Name: "clickReferringURL", Type: "string"},
			{Name: "pubCommissionAmountUsd", Type: "number"},
			{Name: "saleAmountUsd", Type: "number"},
			{Name: "orderId", Type: "string"},
			{Name: "source", Type: "string"},
			{Name: "items", Type: "array", Items: []Field{
				{Name: "quantity", Type: "integer"},
				{Name: "perItemSaleAmountPubCurrency", Type: "number"},
				{Name: "totalCommissionPubCurrency", Type: "number"},
				{Name: "sku", Type: "string"},
			}},
			{Name: "verticalAttributes", Type: "object", Properties: []Field{
				{Name: "itemName", Type: "string"},
				{Name: "brand", Type: "string"},
			}},
		},
	}
}
