package domain

// Required geolocation columns. A raw record missing either key is rejected.
const (
	ColumnLatitude  = "PDX_LAT"
	ColumnLongitude = "PDX_LNG"
)

// Identity and address columns. These are kept verbatim even when the cell
// looks numeric (postal codes, street numbers, ids).
const (
	ColumnID           = "PDX_ID"
	ColumnName         = "NOME"
	ColumnStreet       = "PDX_ENDERECO"
	ColumnNumber       = "PDX_NUMERO"
	ColumnNeighborhood = "PDX_BAIRRO"
	ColumnCity         = "PDX_CIDADE"
	ColumnState        = "PDX_ESTADO"
	ColumnPostalCode   = "PDX_CEP"
)

// Audience metric columns
const (
	ColumnReach       = "Alcance Geral Target"
	ColumnFrequency   = "Frequência Média"
	ColumnImpressions = "Impactos Gerais"

	ColumnGenderMale   = "Gênero (Masculino)"
	ColumnGenderFemale = "Gênero (Feminino)"

	ColumnAge18To24 = "Faixa Etária (18_24)"
	ColumnAge25To29 = "Faixa Etária (25_29)"
	ColumnAge30To39 = "Faixa Etária (30_39)"
	ColumnAge40To49 = "Faixa Etária (40_49)"
	ColumnAge50To59 = "Faixa Etária (50_59)"
	ColumnAge60To69 = "Faixa Etária (60_69)"
	ColumnAge70Plus = "Faixa Etária (70+)"

	ColumnSocioA = "Nível Socioeconômico (A)"
	ColumnSocioB = "Nível Socioeconômico (B)"
	ColumnSocioC = "Nível Socioeconômico (C)"
	ColumnSocioD = "Nível Socioeconômico (D)"
	ColumnSocioE = "Nível Socioeconômico (E)"

	ColumnPlatformIOS     = "Plataforma (ios)"
	ColumnPlatformAndroid = "Plataforma (Android)"
)

// RankedPrefix marks ranked categorical columns such as "#1 Marca".
const RankedPrefix = "#"

// GenderColumns lists the gender count columns in display order.
var GenderColumns = []string{ColumnGenderMale, ColumnGenderFemale}

// AgeColumns lists the age bracket count columns in ascending bracket order.
var AgeColumns = []string{
	ColumnAge18To24,
	ColumnAge25To29,
	ColumnAge30To39,
	ColumnAge40To49,
	ColumnAge50To59,
	ColumnAge60To69,
	ColumnAge70Plus,
}

// SocioColumns lists the socio-economic bracket columns from A to E.
var SocioColumns = []string{ColumnSocioA, ColumnSocioB, ColumnSocioC, ColumnSocioD, ColumnSocioE}

// PlatformColumns lists the mobile platform count columns.
var PlatformColumns = []string{ColumnPlatformIOS, ColumnPlatformAndroid}

// CountColumns returns every known audience count column. The slice is newly
// allocated on each call.
func CountColumns() []string {
	cols := []string{ColumnReach, ColumnImpressions}
	cols = append(cols, GenderColumns...)
	cols = append(cols, AgeColumns...)
	cols = append(cols, SocioColumns...)
	cols = append(cols, PlatformColumns...)
	return cols
}

// IsPreservedColumn reports whether a column holds identity, address or ranked
// categorical text that must never be coerced into a number.
func IsPreservedColumn(column string) bool {
	switch column {
	case ColumnID, ColumnName, ColumnStreet, ColumnNumber,
		ColumnNeighborhood, ColumnCity, ColumnState, ColumnPostalCode:
		return true
	}
	return len(column) >= len(RankedPrefix) && column[:len(RankedPrefix)] == RankedPrefix
}

// IsKnownColumn reports whether column is one of the fixed PDX export
// columns. Ranked "#N" columns are not included.
func IsKnownColumn(column string) bool {
	switch column {
	case ColumnLatitude, ColumnLongitude, ColumnFrequency,
		ColumnID, ColumnName, ColumnStreet, ColumnNumber,
		ColumnNeighborhood, ColumnCity, ColumnState, ColumnPostalCode:
		return true
	}
	for _, c := range CountColumns() {
		if c == column {
			return true
		}
	}
	return false
}
