package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Inventory is the payload returned by the Steam Community inventory endpoint.
// A missing assets or descriptions key decodes to a nil slice.
type Inventory struct {
	Assets       []Asset       `json:"assets"`
	Descriptions []Description `json:"descriptions"`
	TotalCount   int           `json:"total_inventory_count,omitempty"`
	Error        string        `json:"error,omitempty"` // Set by the upstream on failures reported with a 200
}

// Asset is a single owned-item record
type Asset struct {
	AppID      string `json:"appid,omitempty"`
	ContextID  string `json:"contextid,omitempty"`
	AssetID    string `json:"assetid,omitempty"`
	ClassID    string `json:"classid"`
	InstanceID string `json:"instanceid"`
	Amount     string `json:"amount"` // Quantity as text; may be absent or non-numeric
}

// UnmarshalJSON accepts ids and amounts sent as strings or numbers
func (a *Asset) UnmarshalJSON(data []byte) error {
	var raw struct {
		AppID      looseString `json:"appid"`
		ContextID  looseString `json:"contextid"`
		AssetID    looseString `json:"assetid"`
		ClassID    looseString `json:"classid"`
		InstanceID looseString `json:"instanceid"`
		Amount     looseString `json:"amount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Asset{
		AppID:      string(raw.AppID),
		ContextID:  string(raw.ContextID),
		AssetID:    string(raw.AssetID),
		ClassID:    string(raw.ClassID),
		InstanceID: string(raw.InstanceID),
		Amount:     string(raw.Amount),
	}
	return nil
}

// ClassKey returns the compound class reference shared with descriptions
func (a Asset) ClassKey() string {
	return ClassKey(a.ClassID, a.InstanceID)
}

// Quantity parses Amount, defaulting to 1 for absent, non-numeric or
// non-positive values
func (a Asset) Quantity() int {
	n, err := strconv.Atoi(a.Amount)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// Description holds the shared metadata for a class of items
type Description struct {
	ClassID        string `json:"classid"`
	InstanceID     string `json:"instanceid"`
	MarketHashName string `json:"market_hash_name"`
	Name           string `json:"name,omitempty"`
	Type           string `json:"type"`
	Tradable       int    `json:"tradable"`
	Marketable     int    `json:"marketable"`
	Tags           []Tag  `json:"tags,omitempty"`
}

type descriptionFields Description

// UnmarshalJSON accepts class ids as strings or numbers and the 0/1 flags as
// numbers, booleans or strings
func (d *Description) UnmarshalJSON(data []byte) error {
	var raw struct {
		*descriptionFields
		ClassID    looseString `json:"classid"`
		InstanceID looseString `json:"instanceid"`
		Tradable   looseFlag   `json:"tradable"`
		Marketable looseFlag   `json:"marketable"`
	}
	raw.descriptionFields = (*descriptionFields)(d)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.ClassID = string(raw.ClassID)
	d.InstanceID = string(raw.InstanceID)
	d.Tradable = int(raw.Tradable)
	d.Marketable = int(raw.Marketable)
	return nil
}

// ClassKey returns the compound class reference
func (d Description) ClassKey() string {
	return ClassKey(d.ClassID, d.InstanceID)
}

// Tag is a category tag attached to a description
type Tag struct {
	Category         string `json:"category"`
	InternalName     string `json:"internal_name"`
	LocalizedTagName string `json:"localized_tag_name"`
}

// ClassKey joins the two class identifiers into a lookup key
func ClassKey(classID, instanceID string) string {
	return classID + "_" + instanceID
}

// CaseItem is an aggregated container entry, one per market hash name
type CaseItem struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Tradable   bool   `json:"tradable"`
	Marketable bool   `json:"marketable"`
}

// LookupResult is the outcome of resolving an account and listing its containers
type LookupResult struct {
	Cases     []CaseItem `json:"cases"`
	AccountID string     `json:"accountId,omitempty"`
}

// looseString decodes a JSON string, number or boolean as its text. null
// leaves it empty.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return fmt.Errorf("expected a scalar, got %.20s", data)
	default:
		*s = looseString(data)
		return nil
	}
}

// looseFlag decodes 1, "1" and true as 1; anything else is 0
type looseFlag int

func (f *looseFlag) UnmarshalJSON(data []byte) error {
	var s looseString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	switch s {
	case "1", "true":
		*f = 1
	default:
		*f = 0
	}
	return nil
}
