package interbase

// Catalog queries. Text columns of the catalog are fixed-width CHAR and
// arrive padded, so names are trimmed on the server and again on decode.

const hasTableQuery = `SELECT 1 AS has_table
FROM rdb$relations
WHERE rdb$relation_name = LTRIM(RTRIM(?))`

const hasSequenceQuery = `SELECT 1 AS has_sequence
FROM rdb$generators
WHERE rdb$generator_name = LTRIM(RTRIM(?))`

const tableNamesQuery = `SELECT LTRIM(RTRIM(rdb$relation_name)) AS relation_name
FROM rdb$relations
WHERE UPPER(LTRIM(RTRIM(rdb$relation_type))) IN ('PERSISTENT')
  AND COALESCE(rdb$system_flag, 0) = 0
ORDER BY 1`

// InterBase catalogs have no rdb$relation_type.
const tableNamesLegacyQuery = `SELECT LTRIM(RTRIM(rdb$relation_name)) AS relation_name
FROM rdb$relations
WHERE rdb$view_blr IS NULL
  AND COALESCE(rdb$system_flag, 0) = 0
ORDER BY 1`

const tempTableNamesQuery = `SELECT LTRIM(RTRIM(rdb$relation_name)) AS relation_name
FROM rdb$relations
WHERE rdb$relation_type IN ('GLOBAL_TEMPORARY_PRESERVE', 'GLOBAL_TEMPORARY_DELETE')
  AND COALESCE(rdb$system_flag, 0) = 0
ORDER BY 1`

const viewNamesQuery = `SELECT LTRIM(RTRIM(rdb$relation_name)) AS relation_name
FROM rdb$relations
WHERE rdb$relation_type IN ('VIEW')
  AND COALESCE(rdb$system_flag, 0) = 0
ORDER BY 1`

const viewNamesLegacyQuery = `SELECT LTRIM(RTRIM(rdb$relation_name)) AS relation_name
FROM rdb$relations
WHERE rdb$view_blr IS NOT NULL
  AND COALESCE(rdb$system_flag, 0) = 0
ORDER BY 1`

const viewDefinitionQuery = `SELECT rdb$view_source AS view_source
FROM rdb$relations
WHERE rdb$relation_type IN ('VIEW')
  AND rdb$relation_name = LTRIM(RTRIM(?))`

const viewDefinitionLegacyQuery = `SELECT rdb$view_source AS view_source
FROM rdb$relations
WHERE rdb$view_blr IS NOT NULL
  AND rdb$relation_name = LTRIM(RTRIM(?))`

const sequenceNamesQuery = `SELECT LTRIM(RTRIM(rdb$generator_name)) AS generator_name
FROM rdb$generators
WHERE COALESCE(rdb$system_flag, 0) = 0`

// columnsQuery is used on engines without identity columns. It must stay
// in step with columnsIdentityQuery.
const columnsQuery = `SELECT RTRIM(rf.rdb$field_name) AS field_name,
       COALESCE(rf.rdb$null_flag, f.rdb$null_flag) AS null_flag,
       RTRIM(t.rdb$type_name) AS field_type,
       f.rdb$field_length / COALESCE(cs.rdb$bytes_per_character, 1) AS field_length,
       f.rdb$field_precision AS field_precision,
       f.rdb$field_scale * -1 AS field_scale,
       f.rdb$field_sub_type AS field_sub_type,
       f.rdb$segment_length AS segment_length,
       RTRIM(cs.rdb$character_set_name) AS character_set_name,
       RTRIM(cl.rdb$collation_name) AS collation_name,
       COALESCE(rf.rdb$default_source, f.rdb$default_source) AS default_source,
       RTRIM(rf.rdb$description) AS description,
       f.rdb$computed_source AS computed_source
FROM rdb$relation_fields rf
     JOIN rdb$fields f
       ON f.rdb$field_name = rf.rdb$field_source
     JOIN rdb$types t
       ON t.rdb$type = f.rdb$field_type
      AND t.rdb$field_name = 'RDB$FIELD_TYPE'
     LEFT JOIN rdb$character_sets cs
            ON cs.rdb$character_set_id = f.rdb$character_set_id
     LEFT JOIN rdb$collations cl
            ON cl.rdb$collation_id = rf.rdb$collation_id
           AND cl.rdb$character_set_id = cs.rdb$character_set_id
WHERE COALESCE(f.rdb$system_flag, 0) = 0
  AND rf.rdb$relation_name = LTRIM(RTRIM(?))
ORDER BY rf.rdb$field_position`

// columnsIdentityQuery adds the identity columns of Firebird 3 and later.
const columnsIdentityQuery = `SELECT RTRIM(rf.rdb$field_name) AS field_name,
       COALESCE(rf.rdb$null_flag, f.rdb$null_flag) AS null_flag,
       RTRIM(t.rdb$type_name) AS field_type,
       f.rdb$field_length / COALESCE(cs.rdb$bytes_per_character, 1) AS field_length,
       f.rdb$field_precision AS field_precision,
       f.rdb$field_scale * -1 AS field_scale,
       f.rdb$field_sub_type AS field_sub_type,
       f.rdb$segment_length AS segment_length,
       RTRIM(cs.rdb$character_set_name) AS character_set_name,
       RTRIM(cl.rdb$collation_name) AS collation_name,
       COALESCE(rf.rdb$default_source, f.rdb$default_source) AS default_source,
       RTRIM(rf.rdb$description) AS description,
       f.rdb$computed_source AS computed_source,
       rf.rdb$identity_type AS identity_type,
       g.rdb$initial_value AS initial_value,
       g.rdb$generator_increment AS generator_increment
FROM rdb$relation_fields rf
     JOIN rdb$fields f
       ON f.rdb$field_name = rf.rdb$field_source
     JOIN rdb$types t
       ON t.rdb$type = f.rdb$field_type
      AND t.rdb$field_name = 'RDB$FIELD_TYPE'
     LEFT JOIN rdb$character_sets cs
            ON cs.rdb$character_set_id = f.rdb$character_set_id
     LEFT JOIN rdb$collations cl
            ON cl.rdb$collation_id = rf.rdb$collation_id
           AND cl.rdb$character_set_id = cs.rdb$character_set_id
     LEFT JOIN rdb$generators g
            ON g.rdb$generator_name = rf.rdb$generator_name
WHERE COALESCE(f.rdb$system_flag, 0) = 0
  AND rf.rdb$relation_name = LTRIM(RTRIM(?))
ORDER BY rf.rdb$field_position`

const primaryKeyQuery = `SELECT LTRIM(RTRIM(rc.rdb$constraint_name)) AS cname,
       LTRIM(RTRIM(se.rdb$field_name)) AS fname
FROM rdb$relation_constraints rc
     JOIN rdb$index_segments se
       ON se.rdb$index_name = rc.rdb$index_name
WHERE rc.rdb$constraint_type = 'PRIMARY KEY'
  AND rc.rdb$relation_name = LTRIM(RTRIM(?))
ORDER BY se.rdb$field_position`

const foreignKeysQuery = `SELECT LTRIM(RTRIM(rc.rdb$constraint_name)) AS cname,
       LTRIM(RTRIM(cse.rdb$field_name)) AS fname,
       LTRIM(RTRIM(ix2.rdb$relation_name)) AS targetrname,
       LTRIM(RTRIM(se.rdb$field_name)) AS targetfname,
       LTRIM(RTRIM(rfc.rdb$update_rule)) AS update_rule,
       LTRIM(RTRIM(rfc.rdb$delete_rule)) AS delete_rule
FROM rdb$relation_constraints rc
     JOIN rdb$ref_constraints rfc
       ON rfc.rdb$constraint_name = rc.rdb$constraint_name
     JOIN rdb$indices ix1
       ON ix1.rdb$index_name = rc.rdb$index_name
     JOIN rdb$indices ix2
       ON ix2.rdb$index_name = ix1.rdb$foreign_key
     JOIN rdb$index_segments cse
       ON cse.rdb$index_name = ix1.rdb$index_name
     JOIN rdb$index_segments se
       ON se.rdb$index_name = ix2.rdb$index_name
      AND se.rdb$field_position = cse.rdb$field_position
WHERE rc.rdb$constraint_type = 'FOREIGN KEY'
  AND rc.rdb$relation_name = LTRIM(RTRIM(?))
ORDER BY rc.rdb$constraint_name, se.rdb$field_position`

// indexesQuery is used before Firebird 5, which has no partial indexes.
const indexesQuery = `SELECT LTRIM(RTRIM(ix.rdb$index_name)) AS index_name,
       ix.rdb$unique_flag AS unique_flag,
       ix.rdb$index_type AS descending_flag,
       LTRIM(RTRIM(ic.rdb$field_name)) AS field_name,
       LTRIM(RTRIM(ix.rdb$expression_source)) AS expression_source,
       CAST(NULL AS VARCHAR(255)) AS condition_source
FROM rdb$indices ix
     LEFT OUTER JOIN rdb$index_segments ic
                  ON ic.rdb$index_name = ix.rdb$index_name
     LEFT OUTER JOIN rdb$relation_constraints rc
                  ON rc.rdb$index_name = ix.rdb$index_name
WHERE ix.rdb$relation_name = LTRIM(RTRIM(?))
  AND ix.rdb$foreign_key IS NULL
  AND (rc.rdb$constraint_type IS NULL OR rc.rdb$constraint_type <> 'PRIMARY KEY')
ORDER BY ix.rdb$index_name, ic.rdb$field_position`

const indexesPartialQuery = `SELECT LTRIM(RTRIM(ix.rdb$index_name)) AS index_name,
       ix.rdb$unique_flag AS unique_flag,
       ix.rdb$index_type AS descending_flag,
       LTRIM(RTRIM(ic.rdb$field_name)) AS field_name,
       LTRIM(RTRIM(ix.rdb$expression_source)) AS expression_source,
       LTRIM(RTRIM(ix.rdb$condition_source)) AS condition_source
FROM rdb$indices ix
     LEFT OUTER JOIN rdb$index_segments ic
                  ON ic.rdb$index_name = ix.rdb$index_name
     LEFT OUTER JOIN rdb$relation_constraints rc
                  ON rc.rdb$index_name = ix.rdb$index_name
WHERE ix.rdb$relation_name = LTRIM(RTRIM(?))
  AND ix.rdb$foreign_key IS NULL
  AND (rc.rdb$constraint_type IS NULL OR rc.rdb$constraint_type <> 'PRIMARY KEY')
ORDER BY ix.rdb$index_name, ic.rdb$field_position`

const columnNamesQuery = `SELECT LTRIM(RTRIM(r.rdb$field_name)) AS fname
FROM rdb$relation_fields r
WHERE r.rdb$relation_name = LTRIM(RTRIM(?))`

const uniqueConstraintsQuery = `SELECT LTRIM(RTRIM(rc.rdb$constraint_name)) AS cname,
       LTRIM(RTRIM(se.rdb$field_name)) AS column_name
FROM rdb$index_segments se
     JOIN rdb$relation_constraints rc
       ON rc.rdb$index_name = se.rdb$index_name
     JOIN rdb$relations r
       ON r.rdb$relation_name = rc.rdb$relation_name
      AND COALESCE(r.rdb$system_flag, 0) = 0
WHERE rc.rdb$constraint_type = 'UNIQUE'
  AND r.rdb$relation_name = LTRIM(RTRIM(?))
ORDER BY rc.rdb$constraint_name, se.rdb$field_position`

const tableCommentQuery = `SELECT LTRIM(RTRIM(rdb$description)) AS comment
FROM rdb$relations
WHERE rdb$relation_name = LTRIM(RTRIM(?))`

const checkConstraintsQuery = `SELECT LTRIM(RTRIM(rc.rdb$constraint_name)) AS cname,
       tr.rdb$trigger_source AS sqltext
FROM rdb$relation_constraints rc
     JOIN rdb$check_constraints ck
       ON ck.rdb$constraint_name = rc.rdb$constraint_name
     JOIN rdb$triggers tr
       ON tr.rdb$trigger_name = ck.rdb$trigger_name
WHERE rc.rdb$constraint_type = 'CHECK'
  AND rc.rdb$relation_name = LTRIM(RTRIM(?))
  AND tr.rdb$trigger_type = 1
ORDER BY 1`

const domainsQuery = `SELECT LTRIM(RTRIM(f.rdb$field_name)) AS fname,
       f.rdb$null_flag AS null_flag,
       RTRIM(t.rdb$type_name) AS field_type,
       f.rdb$field_length / COALESCE(cs.rdb$bytes_per_character, 1) AS field_length,
       f.rdb$field_precision AS field_precision,
       f.rdb$field_scale * -1 AS field_scale,
       f.rdb$field_sub_type AS field_sub_type,
       f.rdb$segment_length AS segment_length,
       RTRIM(cs.rdb$character_set_name) AS character_set_name,
       RTRIM(cl.rdb$collation_name) AS collation_name,
       f.rdb$default_source AS default_source,
       f.rdb$validation_source AS validation_source,
       LTRIM(RTRIM(f.rdb$description)) AS description
FROM rdb$fields f
     JOIN rdb$types t
       ON t.rdb$type = f.rdb$field_type
      AND t.rdb$field_name = 'RDB$FIELD_TYPE'
     LEFT JOIN rdb$character_sets cs
            ON cs.rdb$character_set_id = f.rdb$character_set_id
     LEFT JOIN rdb$collations cl
            ON cl.rdb$collation_id = f.rdb$collation_id
           AND cl.rdb$character_set_id = f.rdb$character_set_id
WHERE COALESCE(f.rdb$system_flag, 0) = 0
  AND f.rdb$field_name NOT STARTING WITH 'RDB$'
ORDER BY 1`

// nextValueQuery fetches the next value of a generator. The name is
// formatted by the preparer.
const nextValueQuery = "SELECT GEN_ID(%s, 1) FROM rdb$database"
