package domain

// LookupResult — результат поиска товара в справочнике: запись найдена либо нет.
type LookupResult struct {
	record ProductRecord
	found  bool
}

// Found — запись найдена.
func Found(record ProductRecord) LookupResult { return LookupResult{record: record, found: true} }

// NotFound — записи с таким кодом нет.
func NotFound() LookupResult { return LookupResult{} }

// Record возвращает запись и признак её наличия.
func (r LookupResult) Record() (ProductRecord, bool) { return r.record, r.found }

// IsFound — признак наличия записи.
func (r LookupResult) IsFound() bool { return r.found }
