package interbase

import "strings"

// Reserved keywords of Firebird 2.5. InterBase uses the same set.
const reserved25 = `
ADD ADMIN ALL ALTER AND ANY AS AT AVG
BEGIN BETWEEN BIGINT BIT_LENGTH BLOB BOTH BY
CASE CAST CHAR CHAR_LENGTH CHARACTER CHARACTER_LENGTH CHECK CLOSE COLLATE
COLUMN COMMIT CONNECT CONSTRAINT COUNT CREATE CROSS CURRENT
CURRENT_CONNECTION CURRENT_DATE CURRENT_ROLE CURRENT_TIME CURRENT_TIMESTAMP
CURRENT_TRANSACTION CURRENT_USER CURSOR
DATE DAY DEC DECIMAL DECLARE DEFAULT DELETE DELETING DISCONNECT DISTINCT
DOUBLE DROP
ELSE END ESCAPE EXECUTE EXISTS EXTERNAL EXTRACT
FETCH FILTER FLOAT FOR FOREIGN FROM FULL FUNCTION
GDSCODE GLOBAL GRANT GROUP
HAVING HOUR
IN INDEX INNER INSENSITIVE INSERT INSERTING INT INTEGER INTO IS
JOIN
LEADING LEFT LIKE LONG LOWER
MAX MAXIMUM_SEGMENT MERGE MIN MINUTE MONTH
NATIONAL NATURAL NCHAR NO NOT NULL NUMERIC
OCTET_LENGTH OF ON ONLY OPEN OR ORDER OUTER
PARAMETER PLAN POSITION POST_EVENT PRECISION PRIMARY PROCEDURE
RDB$DB_KEY REAL RECORD_VERSION RECREATE RECURSIVE REFERENCES RELEASE
RETURNING_VALUES RETURNS REVOKE RIGHT ROLLBACK ROW_COUNT ROWS
SAVEPOINT SECOND SELECT SENSITIVE SET SIMILAR SMALLINT SOME SQLCODE SQLSTATE
START SUM
TABLE THEN TIME TIMESTAMP TO TRAILING TRIGGER TRIM
UNION UNIQUE UPDATE UPDATING UPPER USER USING
VALUE VALUES VARCHAR VARIABLE VARYING VIEW
WHEN WHERE WHILE WITH
YEAR
`

// Keywords reserved since Firebird 3.0.
const reserved30 = `
BOOLEAN CORR COVAR_POP COVAR_SAMP DETERMINISTIC FALSE OFFSET OVER
RDB$RECORD_VERSION REGR_AVGX REGR_AVGY REGR_COUNT REGR_INTERCEPT REGR_R2
REGR_SLOPE REGR_SXX REGR_SXY REGR_SYY RETURN ROW SCROLL STDDEV_POP
STDDEV_SAMP TRUE UNKNOWN VAR_POP VAR_SAMP
`

// Keywords reserved since Firebird 4.0.
const reserved40 = `
BINARY DECFLOAT INT128 LATERAL LOCAL LOCALTIME LOCALTIMESTAMP PUBLICATION
RDB$ERROR RDB$GET_TRANSACTION_CN RDB$ROLE_IN_USE RDB$SYSTEM_PRIVILEGE
RESETTING TIMEZONE_HOUR TIMEZONE_MINUTE UNBOUNDED VARBINARY WINDOW WITHOUT
`

var (
	reservedWords25 = wordSet(reserved25)
	reservedWords30 = wordSet(reserved25, reserved30)
	reservedWords40 = wordSet(reserved25, reserved30, reserved40)
)

func wordSet(lists ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, l := range lists {
		for _, w := range strings.Fields(l) {
			set[w] = struct{}{}
		}
	}
	return set
}
