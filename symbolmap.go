// Copyright (c) 2024 Neomantra Corp

package dbz

import "fmt"

// TsSymbolMap is a timeseries symbol map keyed by calendar date and native
// symbol. It flattens a Metadata's mapping intervals into a per-day lookup,
// useful when resolving a symbol across a date range spanning interval
// boundaries (e.g. a contract roll).
type TsSymbolMap struct {
	byDate map[Date]map[string]string
}

// NewTsSymbolMap returns an empty TsSymbolMap.
func NewTsSymbolMap() *TsSymbolMap {
	return &TsSymbolMap{byDate: make(map[Date]map[string]string)}
}

// IsEmpty reports whether the map holds no mappings.
func (tsm *TsSymbolMap) IsEmpty() bool {
	return len(tsm.byDate) == 0
}

// Get returns the symbol mapped to native on date, or "" if none exists.
func (tsm *TsSymbolMap) Get(date Date, native string) string {
	day, ok := tsm.byDate[date]
	if !ok {
		return ""
	}
	return day[native]
}

// FillFromMetadata clears tsm and repopulates it from metadata's mappings,
// expanding every MappingInterval into one entry per calendar day it spans.
func (tsm *TsSymbolMap) FillFromMetadata(metadata *Metadata) error {
	tsm.byDate = make(map[Date]map[string]string)
	for _, mapping := range metadata.Mappings {
		for _, interval := range mapping.Intervals {
			if interval.Symbol == "" {
				continue
			}
			if interval.StartDate.Compare(interval.EndDate) > 0 {
				return fmt.Errorf("mapping %q: start_date after end_date", mapping.Native)
			}
			tsm.insertRange(mapping.Native, interval.StartDate, interval.EndDate, interval.Symbol)
		}
	}
	return nil
}

func (tsm *TsSymbolMap) insertRange(native string, start, end Date, symbol string) {
	for d := start.Time(); !d.After(end.Time()); d = d.AddDate(0, 0, 1) {
		day := DateFromTime(d)
		bucket, ok := tsm.byDate[day]
		if !ok {
			bucket = make(map[string]string)
			tsm.byDate[day] = bucket
		}
		bucket[native] = symbol
	}
}

///////////////////////////////////////////////////////////////////////////////

// PitSymbolMap is a point-in-time symbol map: a snapshot of native-to-symbol
// resolutions valid for a single calendar date. Useful when every record
// being processed falls on the same trading day, avoiding a per-record date
// lookup.
type PitSymbolMap struct {
	mapping map[string]string
}

// NewPitSymbolMap returns an empty PitSymbolMap.
func NewPitSymbolMap() *PitSymbolMap {
	return &PitSymbolMap{mapping: make(map[string]string)}
}

// IsEmpty reports whether the map holds no mappings.
func (p *PitSymbolMap) IsEmpty() bool {
	return len(p.mapping) == 0
}

// Len returns the number of native symbols with a resolution on this date.
func (p *PitSymbolMap) Len() int {
	return len(p.mapping)
}

// Get returns the symbol mapped to native, or "" if none exists on this date.
func (p *PitSymbolMap) Get(native string) string {
	return p.mapping[native]
}

// FillFromMetadata clears p and repopulates it from metadata's mappings,
// keeping only the interval covering date for each native symbol.
func (p *PitSymbolMap) FillFromMetadata(metadata *Metadata, date Date) error {
	p.mapping = make(map[string]string, len(metadata.Mappings))
	for _, mapping := range metadata.Mappings {
		for _, interval := range mapping.Intervals {
			if interval.Symbol == "" {
				continue
			}
			if date.Compare(interval.StartDate) < 0 || date.Compare(interval.EndDate) > 0 {
				continue
			}
			p.mapping[mapping.Native] = interval.Symbol
			break
		}
	}
	return nil
}
