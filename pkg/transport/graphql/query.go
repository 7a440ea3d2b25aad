package graphql

import (
	"fmt"
	"strings"

	"github.com/saturnines/tap-cj/pkg/errors"
	"github.com/saturnines/tap-cj/pkg/pagination"
)

// Placeholder tokens substituted into the query template. Publisher ids and
// dates must not themselves contain these substrings; substitution is literal.
const (
	TokenPubID    = "$PUB_ID"
	TokenFromDate = "$FROM_DATE"
	TokenToDate   = "$TO_DATE"
)

// DefaultCommissionsQuery is the publisherCommissions query document shipped
// with the tap. Settings may override it.
const DefaultCommissionsQuery = `
	publisherCommissions(
		forPublishers: ["$PUB_ID"],
		sincePostingDate:"$FROM_DATET00:00:00Z",
		beforePostingDate:"$TO_DATET00:00:00Z"
	){
		count
		payloadComplete
		records
		{
			actionTrackerName
			actionTrackerId
			websiteName
			advertiserName
			postingDate
			eventDate
			commissionId
			clickDate
			actionStatus
			actionType
			shopperId
			publisherId
			websiteId
			advertiserId
			orderDiscountUsd
			clickReferringURL
			pubCommissionAmountUsd
			saleAmountUsd
			orderId
			source
			items
			{
				quantity
				perItemSaleAmountPubCurrency
				totalCommissionPubCurrency
				sku
			}
			verticalAttributes
			{
				itemName
				brand
			}
		}
	}
`

// RenderQuery renders a query template for one publisher id and date window.
// The template is wrapped in a top-level "query { ... }" block if it isn't
// already, collapsed to a single line, and the three placeholder tokens are
// replaced literally.
func RenderQuery(template, pubID string, w pagination.Window) (string, error) {
	if strings.TrimSpace(template) == "" {
		return "", errors.WrapError(
			fmt.Errorf("query template not set"),
			errors.ErrConfiguration,
			"render query",
		)
	}

	query := strings.TrimLeft(template, " \t\r\n")
	if !strings.HasPrefix(query, "query") {
		// Wrap text in "query { }" if not already wrapped
		query = "query { " + query + " }"
	}

	query = strings.NewReplacer(
		TokenPubID, pubID,
		TokenFromDate, w.From.Format(pagination.DateFormat),
		TokenToDate, w.To.Format(pagination.DateFormat),
	).Replace(query)

	return flatten(query), nil
}

// flatten collapses all whitespace runs (including newlines) to single spaces,
// producing a compact single-line query body.
func flatten(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
