package schema

import "ttdialect/internal/dialect"

// TPTBMTableName is the benchmark table from the TimesTen quickstart.
const TPTBMTableName = "TPTBM"

// TPTBM column names.
const (
	ColVpnID            = "VPN_ID"
	ColVpnNB            = "VPN_NB"
	ColDirectoryNB      = "DIRECTORY_NB"
	ColLastCallingParty = "LAST_CALLING_PARTY"
	ColDescr            = "DESCR"
)

// TPTBM returns the benchmark table definition:
//
//	create table TPTBM (VPN_ID TT_INTEGER not null, VPN_NB TT_INTEGER not null,
//	  DIRECTORY_NB CHAR(10), LAST_CALLING_PARTY CHAR(10), DESCR CHAR(100),
//	  primary key (VPN_ID, VPN_NB))
func TPTBM() *Table {
	return &Table{
		Name: TPTBMTableName,
		Columns: []*Column{
			{Name: ColVpnID, Type: dialect.Integer, PrimaryKey: true},
			{Name: ColVpnNB, Type: dialect.Integer, PrimaryKey: true},
			{Name: ColDirectoryNB, Type: dialect.Char, Length: 10, Definition: "CHAR(10)", Nullable: true},
			{Name: ColLastCallingParty, Type: dialect.Char, Length: 10, Definition: "CHAR(10)", Nullable: true},
			{Name: ColDescr, Type: dialect.Char, Length: 100, Definition: "CHAR(100)", Nullable: true},
		},
		Dependencies: []string{},
	}
}
