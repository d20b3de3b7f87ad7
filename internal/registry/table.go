package registry

import "github.com/vvka-141/pgiban/pkg/pgiban"

// table is the built-in country list. Each example is a known-valid IBAN;
// registry construction verifies all of them.
var table = []pgiban.Specification{
	{CountryCode: "AD", Length: 24, Structure: "F04F04A12", Example: "AD1200012030200359100100"},
	{CountryCode: "AE", Length: 23, Structure: "F03F16", Example: "AE070331234567890123456"},
	{CountryCode: "AL", Length: 28, Structure: "F08A16", Example: "AL47212110090000000235698741"},
	{CountryCode: "AO", Length: 25, Structure: "F21", Example: "AO69123456789012345678901"},
	{CountryCode: "AT", Length: 20, Structure: "F05F11", Example: "AT611904300234573201"},
	{CountryCode: "AZ", Length: 28, Structure: "U04A20", Example: "AZ21NABZ00000000137010001944"},
	{CountryCode: "BA", Length: 20, Structure: "F03F03F08F02", Example: "BA391290079401028494"},
	{CountryCode: "BE", Length: 16, Structure: "F03F07F02", Example: "BE68539007547034"},
	{CountryCode: "BF", Length: 27, Structure: "F23", Example: "BF2312345678901234567890123"},
	{CountryCode: "BG", Length: 22, Structure: "U04F04F02A08", Example: "BG80BNBG96611020345678"},
	{CountryCode: "BH", Length: 22, Structure: "U04A14", Example: "BH67BMAG00001299123456"},
	{CountryCode: "BI", Length: 16, Structure: "F12", Example: "BI41123456789012"},
	{CountryCode: "BJ", Length: 28, Structure: "F24", Example: "BJ39123456789012345678901234"},
	{CountryCode: "BR", Length: 29, Structure: "F08F05F10U01A01", Example: "BR9700360305000010009795493P1"},
	{CountryCode: "CG", Length: 27, Structure: "F23", Example: "CG1112345678901234567890123"},
	{CountryCode: "CH", Length: 21, Structure: "F05A12", Example: "CH9300762011623852957"},
	{CountryCode: "CI", Length: 28, Structure: "U01F23", Example: "CI17A12345678901234567890123"},
	{CountryCode: "CM", Length: 27, Structure: "F23", Example: "CM9012345678901234567890123"},
	{CountryCode: "CR", Length: 21, Structure: "F03F14", Example: "CR0515202001026284066"},
	{CountryCode: "CV", Length: 25, Structure: "F21", Example: "CV30123456789012345678901"},
	{CountryCode: "CY", Length: 28, Structure: "F03F05A16", Example: "CY17002001280000001200527600"},
	{CountryCode: "CZ", Length: 24, Structure: "F04F06F10", Example: "CZ6508000000192000145399"},
	{CountryCode: "DE", Length: 22, Structure: "F08F10", Example: "DE89370400440532013000"},
	{CountryCode: "DK", Length: 18, Structure: "F04F09F01", Example: "DK5000400440116243"},
	{CountryCode: "DO", Length: 28, Structure: "U04F20", Example: "DO28BAGR00000001212453611324"},
	{CountryCode: "DZ", Length: 24, Structure: "F20", Example: "DZ8612345678901234567890"},
	{CountryCode: "EE", Length: 20, Structure: "F02F02F11F01", Example: "EE382200221020145685"},
	{CountryCode: "EG", Length: 27, Structure: "F23", Example: "EG9012345678901234567890123"},
	{CountryCode: "ES", Length: 24, Structure: "F04F04F01F01F10", Example: "ES9121000418450200051332"},
	{CountryCode: "FI", Length: 18, Structure: "F06F07F01", Example: "FI2112345600000785"},
	{CountryCode: "FO", Length: 18, Structure: "F04F09F01", Example: "FO6264600001631634"},
	{CountryCode: "FR", Length: 27, Structure: "F05F05A11F02", Example: "FR1420041010050500013M02606"},
	{CountryCode: "GA", Length: 27, Structure: "F23", Example: "GA9012345678901234567890123"},
	{CountryCode: "GB", Length: 22, Structure: "U04F06F08", Example: "GB29NWBK60161331926819"},
	{CountryCode: "GE", Length: 22, Structure: "U02F16", Example: "GE29NB0000000101904917"},
	{CountryCode: "GI", Length: 23, Structure: "U04A15", Example: "GI75NWBK000000007099453"},
	{CountryCode: "GL", Length: 18, Structure: "F04F09F01", Example: "GL8964710001000206"},
	{CountryCode: "GR", Length: 27, Structure: "F03F04A16", Example: "GR1601101250000000012300695"},
	{CountryCode: "GT", Length: 28, Structure: "A04A20", Example: "GT82TRAJ01020000001210029690"},
	{CountryCode: "HR", Length: 21, Structure: "F07F10", Example: "HR1210010051863000160"},
	{CountryCode: "HU", Length: 28, Structure: "F03F04F01F15F01", Example: "HU42117730161111101800000000"},
	{CountryCode: "IE", Length: 22, Structure: "U04F06F08", Example: "IE29AIBK93115212345678"},
	{CountryCode: "IL", Length: 23, Structure: "F03F03F13", Example: "IL620108000000099999999"},
	{CountryCode: "IR", Length: 26, Structure: "F22", Example: "IR861234568790123456789012"},
	{CountryCode: "IS", Length: 26, Structure: "F04F02F06F10", Example: "IS140159260076545510730339"},
	{CountryCode: "IT", Length: 27, Structure: "U01F05F05A12", Example: "IT60X0542811101000000123456"},
	{CountryCode: "JO", Length: 30, Structure: "A04F22", Example: "JO15AAAA1234567890123456789012"},
	{CountryCode: "KW", Length: 30, Structure: "U04A22", Example: "KW81CBKU0000000000001234560101"},
	{CountryCode: "KZ", Length: 20, Structure: "F03A13", Example: "KZ86125KZT5004100100"},
	{CountryCode: "LB", Length: 28, Structure: "F04A20", Example: "LB62099900000001001901229114"},
	{CountryCode: "LC", Length: 32, Structure: "U04F24", Example: "LC07HEMM000100010012001200013015"},
	{CountryCode: "LI", Length: 21, Structure: "F05A12", Example: "LI21088100002324013AA"},
	{CountryCode: "LT", Length: 20, Structure: "F05F11", Example: "LT121000011101001000"},
	{CountryCode: "LU", Length: 20, Structure: "F03A13", Example: "LU280019400644750000"},
	{CountryCode: "LV", Length: 21, Structure: "U04A13", Example: "LV80BANK0000435195001"},
	{CountryCode: "MC", Length: 27, Structure: "F05F05A11F02", Example: "MC5811222000010123456789030"},
	{CountryCode: "MD", Length: 24, Structure: "U02A18", Example: "MD24AG000225100013104168"},
	{CountryCode: "ME", Length: 22, Structure: "F03F13F02", Example: "ME25505000012345678951"},
	{CountryCode: "MG", Length: 27, Structure: "F23", Example: "MG1812345678901234567890123"},
	{CountryCode: "MK", Length: 19, Structure: "F03A10F02", Example: "MK07250120000058984"},
	{CountryCode: "ML", Length: 28, Structure: "U01F23", Example: "ML15A12345678901234567890123"},
	{CountryCode: "MR", Length: 27, Structure: "F05F05F11F02", Example: "MR1300020001010000123456753"},
	{CountryCode: "MT", Length: 31, Structure: "U04F05A18", Example: "MT84MALT011000012345MTLCAST001S"},
	{CountryCode: "MU", Length: 30, Structure: "U04F02F02F12F03U03", Example: "MU17BOMM0101101030300200000MUR"},
	{CountryCode: "MZ", Length: 25, Structure: "F21", Example: "MZ25123456789012345678901"},
	{CountryCode: "NL", Length: 18, Structure: "U04F10", Example: "NL91ABNA0417164300"},
	{CountryCode: "NO", Length: 15, Structure: "F04F06F01", Example: "NO9386011117947"},
	{CountryCode: "PK", Length: 24, Structure: "U04A16", Example: "PK36SCBL0000001123456702"},
	{CountryCode: "PL", Length: 28, Structure: "F08F16", Example: "PL61109010140000071219812874"},
	{CountryCode: "PS", Length: 29, Structure: "U04A21", Example: "PS92PALS000000000400123456702"},
	{CountryCode: "PT", Length: 25, Structure: "F04F04F11F02", Example: "PT50000201231234567890154"},
	{CountryCode: "QA", Length: 29, Structure: "U04A21", Example: "QA30AAAA123456789012345678901"},
	{CountryCode: "RO", Length: 24, Structure: "U04A16", Example: "RO49AAAA1B31007593840000"},
	{CountryCode: "RS", Length: 22, Structure: "F03F13F02", Example: "RS35260005601001611379"},
	{CountryCode: "SA", Length: 24, Structure: "F02A18", Example: "SA0380000000608010167519"},
	{CountryCode: "SE", Length: 24, Structure: "F03F16F01", Example: "SE4550000000058398257466"},
	{CountryCode: "SI", Length: 19, Structure: "F05F08F02", Example: "SI56263300012039086"},
	{CountryCode: "SK", Length: 24, Structure: "F04F06F10", Example: "SK3112000000198742637541"},
	{CountryCode: "SM", Length: 27, Structure: "U01F05F05A12", Example: "SM86U0322509800000000270100"},
	{CountryCode: "SN", Length: 28, Structure: "U01F23", Example: "SN52A12345678901234567890123"},
	{CountryCode: "ST", Length: 25, Structure: "F08F11F02", Example: "ST68000100010051845310112"},
	{CountryCode: "TL", Length: 23, Structure: "F03F14F02", Example: "TL380080012345678910157"},
	{CountryCode: "TN", Length: 24, Structure: "F02F03F13F02", Example: "TN5910006035183598478831"},
	{CountryCode: "TR", Length: 26, Structure: "F05F01A16", Example: "TR330006100519786457841326"},
	{CountryCode: "UA", Length: 29, Structure: "F25", Example: "UA511234567890123456789012345"},
	{CountryCode: "VG", Length: 24, Structure: "U04F16", Example: "VG96VPVG0000012345678901"},
	{CountryCode: "XK", Length: 20, Structure: "F04F10F02", Example: "XK051212012345678906"},
}
