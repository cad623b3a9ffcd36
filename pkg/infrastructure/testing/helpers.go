package testing

import (
	"os"
	"path/filepath"
	"strings"
)

// Snapshot CSV fixtures: one FOB term contract with a quarterly plan and two monthly liftings,
// one CIF range contract whose January lifting is a two-product combi group, and two cargos.
var snapshotFiles = map[string][]string{
	"customers.csv": {
		"id,name",
		"CU1,Acme Energy",
		"CU2,Harbor Trading",
	},
	"contracts.csv": {
		"id,contract_number,customer_id,contract_type,start_date,end_date,tng_lead_days,remark",
		"C1,TC-2024-001,CU1,FOB,2024-01-01,2024-12-31,,",
		"C2,TC-2024-002,CU2,CIF,2024-01-01,2024-12-31,7,range contract",
	},
	"contract_products.csv": {
		"contract_id,product_name,firm_quantity,optional_quantity,min_quantity,max_quantity",
		"C1,Gasoil 10ppm,100,20,90,120",
		"C2,A,60,0,50,60",
		"C2,B,84,0,70,84",
	},
	"quarterly_plans.csv": {
		"id,contract_id,product_name,q1,q2,q3,q4,contract_year",
		"QP1,C1,Gasoil 10ppm,25,30,30,35,1",
	},
	"monthly_plans.csv": {
		"id,quarterly_plan_id,contract_id,product_name,month,year,quantity,combi_group_id,topup_quantity,laycan_5_days,laycan_2_days,loading_window,loading_month,delivery_window,delivery_month",
		"MP1,QP1,,,1,2024,10,,0,10-14,,,,,",
		"MP2,QP1,,,2,2024,15,,0,1-5,3-4,,,,",
		"MP3,,C2,A,1,2024,5,G1,1,,,28-3,January,5-10 Feb,February",
		"MP4,,C2,B,1,2024,7,G1,0,,,28-3,January,5-10 Feb,February",
	},
	"cargos.csv": {
		"id,contract_id,monthly_plan_id,vessel_name,product_name,quantity,status,laycan_window,five_nd_date,five_nd_completed,tng_issued",
		"CG1,C1,MP1,MV Star,Gasoil 10ppm,10,Loading,10-14,,,",
		"CG2,C2,MP3,TBA,A,5,Nomination Released,28-3,2024-01-23,false,false",
	},
}

// WriteSnapshotDir writes the fixture CSV files into dir and returns dir
func WriteSnapshotDir(dir string) string {
	for name, lines := range snapshotFiles {
		content := strings.Join(lines, "\n") + "\n"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			panic(err)
		}
	}
	return dir
}

// OverwriteFile replaces one fixture file with the given lines
func OverwriteFile(dir, name string, lines ...string) {
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		panic(err)
	}
}
