package tests

import (
	"os"
	"testing"

	"asset-badge/util/log"
)

func init() {
	log.Init(true)
}

// GetTestProjectID gets the Blockfrost project id for live tests from
// environment variable, the calling test is skipped if it is not set.
func GetTestProjectID(t *testing.T) string {
	projectID := os.Getenv("ASSET_BADGE_TEST_PROJECT_ID")
	if projectID == "" {
		t.Skip("ASSET_BADGE_TEST_PROJECT_ID not set, test skipped")
	}

	return projectID
}

// GetTestAPI gets the Blockfrost base url for live tests, defaults to mainnet.
func GetTestAPI() string {
	if api := os.Getenv("ASSET_BADGE_TEST_API"); api != "" {
		return api
	}

	return "https://cardano-mainnet.blockfrost.io/api/v0"
}
